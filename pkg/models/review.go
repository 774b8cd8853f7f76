package models

import "time"

// Review is feedback one participant leaves about another within a cooperation.
type Review struct {
	ID            int64     `json:"id"`
	CooperationID int64     `json:"cooperation"`
	ReviewerID    int64     `json:"reviewer"`
	ReviewedID    int64     `json:"reviewed"`
	Name          string    `json:"name"`
	Review        string    `json:"review"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *Review) String() string {
	return r.Name
}

func (r *Review) IsOwnedBy(userID int64) bool {
	return r.ReviewerID == userID
}
