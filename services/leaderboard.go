package services

import (
	"errors"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
)

// LeaderboardService ranks users by cumulative XP.
type LeaderboardService struct {
	DB     *gorm.DB
	Badges *BadgeService
}

func NewLeaderboardService(db *gorm.DB, badges *BadgeService) *LeaderboardService {
	return &LeaderboardService{DB: db, Badges: badges}
}

// Top returns up to limit users sorted by XP, highest first.
func (ls *LeaderboardService) Top(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var users []models.User
	err := ls.DB.Select("id", "username", "xp").
		Order("xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, utils.NewInternal("loading leaderboard: %v", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:   user.ID,
			Username: user.Username,
			XP:       user.XP,
			Rank:     i + 1,
		})
	}
	return entries, nil
}

// ProfileView is the gamification summary of one user.
type ProfileView struct {
	UserID   uint           `json:"user_id"`
	Username string         `json:"username"`
	XP       int            `json:"xp"`
	Badges   []models.Badge `json:"badges"`
}

// Profile returns the user's XP total and currently held badges.
func (ls *LeaderboardService) Profile(userID uint) (*ProfileView, error) {
	var user models.User
	if err := ls.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("user %d not found", userID)
		}
		return nil, utils.NewInternal("loading user %d: %v", userID, err)
	}

	badges, err := ls.Badges.HeldBadges(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		UserID:   user.ID,
		Username: user.Username,
		XP:       user.XP,
		Badges:   badges,
	}, nil
}
