package models

import "time"

// CooperatorProfile is a volunteer's public profile. Each user has at most one.
type CooperatorProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Skills      string    `json:"skills"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *CooperatorProfile) String() string {
	return p.Name
}

func (p *CooperatorProfile) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}
