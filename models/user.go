package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"` // user, admin
	Group        string
	University   string
	XP           int `gorm:"not null;default:0"` // cumulative experience points, sole input to badge eligibility
}

// LeaderboardEntry is the projection returned by the XP leaderboard.
type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Rank     int    `json:"rank"`
}
