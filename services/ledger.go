package services

import (
	"errors"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// XPLedger is the authoritative cumulative XP value per user. The value
// is never clamped; callers own the symmetry of their deltas.
type XPLedger struct{}

func NewXPLedger() *XPLedger {
	return &XPLedger{}
}

// ApplyDelta adds delta to the user's XP as a single UPDATE with
// RETURNING, never read-compute-write. The row lock it takes is held to
// commit, so concurrent XP writes for one user serialize here and the
// badge reconciliation that follows in the same transaction sees a
// stable total.
func (l *XPLedger) ApplyDelta(tx *gorm.DB, userID uint, delta int) (int, error) {
	user := models.User{Model: gorm.Model{ID: userID}}
	res := tx.Model(&user).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "xp"}}}).
		Update("xp", gorm.Expr("xp + ?", delta))
	if res.Error != nil {
		return 0, utils.NewInternal("applying XP delta: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, utils.NewNotFound("user %d not found", userID)
	}
	return user.XP, nil
}

// LockUser takes the user's row lock for the remainder of the
// transaction and returns the current XP. Operations whose XP delta
// depends on prior state must call this before reading that state, so
// concurrent requests for one user serialize instead of computing
// deltas from the same snapshot.
func (l *XPLedger) LockUser(tx *gorm.DB, userID uint) (int, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("xp").
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, utils.NewNotFound("user %d not found", userID)
		}
		return 0, utils.NewInternal("locking user row: %v", err)
	}
	return user.XP, nil
}

// CurrentXP reads the user's XP without modifying it.
func (l *XPLedger) CurrentXP(tx *gorm.DB, userID uint) (int, error) {
	var user models.User
	if err := tx.Select("xp").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, utils.NewNotFound("user %d not found", userID)
		}
		return 0, utils.NewInternal("reading XP: %v", err)
	}
	return user.XP, nil
}
