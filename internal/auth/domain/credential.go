package domain

import "time"

// Credential is a stored Gmail access credential keyed by the chat user id.
// At most one live credential per user; a new login overwrites the old one.
type Credential struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ChatUserID  string    `json:"chat_user_id" gorm:"uniqueIndex;not null"`
	AccessToken string    `json:"-" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile is the Google userinfo projection fetched during the OAuth
// callback. It is logged for traceability, not stored.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
