package services

import (
	"errors"
	"sync"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
)

// BadgeService holds the badge catalog and reconciles user badge sets
// against their XP. The catalog is read-mostly, so it is cached in
// process and invalidated by the admin write paths.
type BadgeService struct {
	DB *gorm.DB

	mu      sync.RWMutex
	catalog []models.Badge
	loaded  bool
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// Catalog returns all badges ordered by threshold, loading them once and
// serving from cache afterwards.
func (bs *BadgeService) Catalog() ([]models.Badge, error) {
	bs.mu.RLock()
	if bs.loaded {
		catalog := bs.catalog
		bs.mu.RUnlock()
		return catalog, nil
	}
	bs.mu.RUnlock()

	var badges []models.Badge
	if err := bs.DB.Order("xp ASC").Find(&badges).Error; err != nil {
		return nil, utils.NewInternal("loading badge catalog: %v", err)
	}

	bs.mu.Lock()
	bs.catalog = badges
	bs.loaded = true
	bs.mu.Unlock()
	return badges, nil
}

// Invalidate drops the cached catalog after an admin write.
func (bs *BadgeService) Invalidate() {
	bs.mu.Lock()
	bs.catalog = nil
	bs.loaded = false
	bs.mu.Unlock()
}

// BadgeDiff computes the minimal grant/revoke sets for a user with the
// given XP: grant badges at or below the total that are not held, revoke
// held badges above it.
func BadgeDiff(catalog []models.Badge, held map[uint]bool, xp int) (grant, revoke []models.Badge) {
	for _, badge := range catalog {
		has := held[badge.ID]
		switch {
		case badge.XP <= xp && !has:
			grant = append(grant, badge)
		case badge.XP > xp && has:
			revoke = append(revoke, badge)
		}
	}
	return grant, revoke
}

// Reconcile brings the user's badge set in line with newXP, applying the
// grant/revoke diff inside the caller's transaction, and returns every
// change tagged with its status. The caller must already hold the user
// row lock (the ledger update takes it) so reconciliations for one user
// cannot interleave.
func (bs *BadgeService) Reconcile(tx *gorm.DB, userID uint, newXP int) ([]models.BadgeChange, error) {
	catalog, err := bs.Catalog()
	if err != nil {
		return nil, err
	}

	var heldRows []models.UserBadge
	if err := tx.Where("user_id = ?", userID).Find(&heldRows).Error; err != nil {
		return nil, utils.NewInternal("loading user badges: %v", err)
	}
	held := make(map[uint]bool, len(heldRows))
	for _, row := range heldRows {
		held[row.BadgeID] = true
	}

	grant, revoke := BadgeDiff(catalog, held, newXP)
	changes := make([]models.BadgeChange, 0, len(grant)+len(revoke))

	if len(grant) > 0 {
		rows := make([]models.UserBadge, 0, len(grant))
		for _, badge := range grant {
			rows = append(rows, models.UserBadge{UserID: userID, BadgeID: badge.ID})
			changes = append(changes, models.BadgeChange{Badge: badge, Status: models.BadgeAcquired})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return nil, utils.NewInternal("granting badges: %v", err)
		}
	}

	if len(revoke) > 0 {
		ids := make([]uint, 0, len(revoke))
		for _, badge := range revoke {
			ids = append(ids, badge.ID)
			changes = append(changes, models.BadgeChange{Badge: badge, Status: models.BadgeRemoved})
		}
		if err := tx.Where("user_id = ? AND badge_id IN ?", userID, ids).
			Delete(&models.UserBadge{}).Error; err != nil {
			return nil, utils.NewInternal("revoking badges: %v", err)
		}
	}

	return changes, nil
}

// HeldBadges returns the full badge records the user currently holds.
func (bs *BadgeService) HeldBadges(userID uint) ([]models.Badge, error) {
	var badges []models.Badge
	err := bs.DB.
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Order("badges.xp ASC").
		Find(&badges).Error
	if err != nil {
		return nil, utils.NewInternal("loading held badges: %v", err)
	}
	return badges, nil
}

type BadgeInput struct {
	Title    string `json:"title" validate:"required,max=50"`
	Content  string `json:"content" validate:"required,max=200"`
	AssetURL string `json:"asset_url"`
	XP       int    `json:"xp" validate:"gte=0"`
}

func (bs *BadgeService) CreateBadge(in BadgeInput) (*models.Badge, error) {
	badge := models.Badge{
		Title:    in.Title,
		Content:  in.Content,
		AssetURL: in.AssetURL,
		XP:       in.XP,
	}
	if err := bs.DB.Create(&badge).Error; err != nil {
		return nil, utils.NewInternal("creating badge: %v", err)
	}
	bs.Invalidate()
	return &badge, nil
}

func (bs *BadgeService) UpdateBadge(badgeID uint, in BadgeInput) (*models.Badge, error) {
	var badge models.Badge
	if err := bs.DB.First(&badge, badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("badge %d not found", badgeID)
		}
		return nil, utils.NewInternal("loading badge %d: %v", badgeID, err)
	}

	badge.Title = in.Title
	badge.Content = in.Content
	badge.AssetURL = in.AssetURL
	badge.XP = in.XP
	if err := bs.DB.Save(&badge).Error; err != nil {
		return nil, utils.NewInternal("updating badge: %v", err)
	}
	bs.Invalidate()
	return &badge, nil
}

// DeleteBadge removes the catalog entry and every user's copy of it.
func (bs *BadgeService) DeleteBadge(badgeID uint) error {
	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Badge{}, badgeID)
		if res.Error != nil {
			return utils.NewInternal("deleting badge: %v", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NewNotFound("badge %d not found", badgeID)
		}
		if err := tx.Where("badge_id = ?", badgeID).Delete(&models.UserBadge{}).Error; err != nil {
			return utils.NewInternal("deleting user badges: %v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	bs.Invalidate()
	return nil
}
