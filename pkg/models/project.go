package models

import "time"

// Project is work proposed by an organization. UserID is the creator, who must
// also own the organization when the project is created.
type Project struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user"`
	OrganizationID int64     `json:"organization"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	RefLink        string    `json:"ref_link"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Project) String() string {
	return p.Name
}

func (p *Project) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}
