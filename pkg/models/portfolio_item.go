package models

import "time"

// PortfolioItem showcases a piece of a cooperator's work.
type PortfolioItem struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *PortfolioItem) String() string {
	return p.Name
}

func (p *PortfolioItem) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}
