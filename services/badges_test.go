package services

import (
	"testing"

	"learnhub-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func makeBadge(id uint, title string, threshold int) models.Badge {
	return models.Badge{Model: gorm.Model{ID: id}, Title: title, XP: threshold}
}

func TestBadgeDiffGrantsBelowThreshold(t *testing.T) {
	catalog := []models.Badge{
		makeBadge(1, "Bronze", 10),
		makeBadge(2, "Silver", 50),
	}

	grant, revoke := BadgeDiff(catalog, map[uint]bool{}, 12)

	assert.Len(t, grant, 1)
	assert.Equal(t, "Bronze", grant[0].Title)
	assert.Empty(t, revoke)
}

func TestBadgeDiffRevokesAboveThreshold(t *testing.T) {
	catalog := []models.Badge{
		makeBadge(1, "Bronze", 10),
		makeBadge(2, "Silver", 50),
	}
	held := map[uint]bool{1: true, 2: true}

	grant, revoke := BadgeDiff(catalog, held, 30)

	assert.Empty(t, grant)
	assert.Len(t, revoke, 1)
	assert.Equal(t, "Silver", revoke[0].Title)
}

func TestBadgeDiffStableWhenConsistent(t *testing.T) {
	catalog := []models.Badge{
		makeBadge(1, "Bronze", 10),
		makeBadge(2, "Silver", 50),
	}
	held := map[uint]bool{1: true}

	grant, revoke := BadgeDiff(catalog, held, 49)

	assert.Empty(t, grant)
	assert.Empty(t, revoke)
}

func TestBadgeDiffExactThresholdGrants(t *testing.T) {
	catalog := []models.Badge{makeBadge(1, "Bronze", 10)}

	grant, revoke := BadgeDiff(catalog, map[uint]bool{}, 10)

	assert.Len(t, grant, 1)
	assert.Empty(t, revoke)
}

func TestBadgeDiffNegativeXPRevokesAll(t *testing.T) {
	catalog := []models.Badge{
		makeBadge(1, "Bronze", 10),
		makeBadge(2, "Starter", 0),
	}
	held := map[uint]bool{1: true, 2: true}

	grant, revoke := BadgeDiff(catalog, held, -5)

	assert.Empty(t, grant)
	assert.Len(t, revoke, 2)
}
