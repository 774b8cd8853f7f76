package models

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Cooperation links a project, the organization-side user and a volunteer.
// Both participant references are nullable: deleting a participant clears the
// reference instead of removing the cooperation.
type Cooperation struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project"`
	UserID      *int64     `json:"user"`
	VoluntaryID *int64     `json:"voluntary"`
	Name        string     `json:"name"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsPrivate   bool       `json:"is_private"`
}

func (c *Cooperation) String() string {
	return c.Name
}

// IsOwnedBy reports whether userID is the organization-side participant.
func (c *Cooperation) IsOwnedBy(userID int64) bool {
	return c.UserID != nil && *c.UserID == userID
}

// HasParticipant reports whether userID occupies either participant slot.
func (c *Cooperation) HasParticipant(userID int64) bool {
	if c.IsOwnedBy(userID) {
		return true
	}
	return c.VoluntaryID != nil && *c.VoluntaryID == userID
}
