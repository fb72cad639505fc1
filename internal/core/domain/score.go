package domain

import "time"

// ScoreUpdate is a partial update of a user's score fields.
// A nil field is left untouched.
type ScoreUpdate struct {
	Score      *int `json:"score,omitempty"`
	Level1     *int `json:"level1,omitempty"`
	TotalScore *int `json:"totalScore,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u ScoreUpdate) IsEmpty() bool {
	return u.Score == nil && u.Level1 == nil && u.TotalScore == nil
}

// Validate rejects empty updates and negative values.
func (u ScoreUpdate) Validate() error {
	if u.IsEmpty() {
		return ErrInvalidScore
	}
	for _, v := range []*int{u.Score, u.Level1, u.TotalScore} {
		if v != nil && *v < 0 {
			return ErrInvalidScore
		}
	}
	return nil
}

// Apply returns a copy of user with the update's fields set.
func (u ScoreUpdate) Apply(user User) User {
	if u.Score != nil {
		user.Score = *u.Score
	}
	if u.Level1 != nil {
		user.Level1 = *u.Level1
	}
	if u.TotalScore != nil {
		user.TotalScore = *u.TotalScore
	}
	return user
}

// ScoreChange is the audit record of one applied ScoreUpdate.
type ScoreChange struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Username  string      `json:"username"`
	UpdatedBy string      `json:"updatedBy"`
	Update    ScoreUpdate `json:"update"`
	ChangedAt time.Time   `json:"changedAt"`
}
