package services

import (
	"fmt"
	"log"
	"time"

	"garyPicks/models"
	"garyPicks/services/userService"

	"gorm.io/gorm"
)

// RunUserStatsRebuildMigration rebuilds every user's aggregate stats from
// their settled decisions. Runs once, guarded by a migration row, for
// deployments that predate the stats table.
func RunUserStatsRebuildMigration(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "rebuild_user_stats").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		return nil
	}

	log.Println("Starting user stats rebuild migration...")

	var decisions []models.UserDecision
	if err := db.Where("outcome IS NOT NULL").Order("updated_at asc").Find(&decisions).Error; err != nil {
		return fmt.Errorf("error fetching settled decisions: %v", err)
	}

	statsMap := make(map[string]*models.UserStats)
	for _, decision := range decisions {
		stats, ok := statsMap[decision.UserID]
		if !ok {
			stats = &models.UserStats{UserID: decision.UserID}
			statsMap[decision.UserID] = stats
		}
		userService.ApplyOutcome(stats, *decision.Outcome)
	}

	for userID, stats := range statsMap {
		var existing models.UserStats
		if err := db.FirstOrCreate(&existing, models.UserStats{UserID: userID}).Error; err != nil {
			log.Printf("Error loading stats for user %s: %v", userID, err)
			continue
		}

		existing.WinCount = stats.WinCount
		existing.LossCount = stats.LossCount
		existing.TotalPicks = stats.TotalPicks
		existing.CurrentStreak = stats.CurrentStreak
		existing.LongestStreak = stats.LongestStreak
		existing.RecentResults = stats.RecentResults
		if err := db.Save(&existing).Error; err != nil {
			log.Printf("Error saving stats for user %s: %v", userID, err)
		}
	}

	migration := models.Migration{
		Name:       "rebuild_user_stats",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error recording migration: %v", err)
	}

	log.Printf("User stats rebuild migration complete: %d users", len(statsMap))
	return nil
}
