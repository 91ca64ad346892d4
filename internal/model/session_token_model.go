package model

import "time"

type SessionToken struct {
	SessionID    string    `gorm:"type:varchar(64);primaryKey" json:"session_id"`
	AccessToken  string    `gorm:"type:text" json:"access_token"`
	RefreshToken string    `gorm:"type:text" json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	UserID       string    `gorm:"type:varchar(64)" json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `gorm:"type:varchar(20)" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *SessionToken) TableName() string {
	return "session_tokens"
}

func (s *SessionToken) User() User {
	return User{ID: s.UserID, FullName: s.FullName, Email: s.Email, Role: s.Role}
}
