package models

import "gorm.io/gorm"

// Badge is an immutable catalog entry. XP is the threshold at which the
// badge is granted; a user whose XP later falls below it loses the badge.
type Badge struct {
	gorm.Model
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"size:200" json:"content"`
	AssetURL string `json:"asset_url"`
	XP       int    `gorm:"not null" json:"xp"`
}

// UserBadge is one row per badge a user currently holds.
type UserBadge struct {
	UserID  uint `gorm:"primaryKey"`
	BadgeID uint `gorm:"primaryKey"`
}

type BadgeStatus string

const (
	BadgeAcquired BadgeStatus = "acquired"
	BadgeRemoved  BadgeStatus = "removed"
)

// BadgeChange reports one grant or revoke produced by reconciliation.
type BadgeChange struct {
	Badge  Badge       `json:"badge"`
	Status BadgeStatus `json:"status"`
}
