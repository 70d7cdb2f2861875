package models

import "time"

// LocalUserID owns all progress when the server runs without authentication.
const LocalUserID = "local"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
