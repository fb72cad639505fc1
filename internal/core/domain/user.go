package domain

import "time"

// User models a player account together with its score fields.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Score        int       `json:"score"`
	Level1       int       `json:"level1"`
	TotalScore   int       `json:"totalScore"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
