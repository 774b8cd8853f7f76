package models

import "time"

// Organization is an NGO that proposes projects. Name is globally unique.
type Organization struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Address     string    `json:"address"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (o *Organization) String() string {
	return o.Name
}

// IsOwnedBy reports whether userID is the organization's owner.
func (o *Organization) IsOwnedBy(userID int64) bool {
	return o.UserID == userID
}
