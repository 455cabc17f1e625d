package scheduler

import (
	"fmt"
	"log"

	"garyPicks/models"
	"garyPicks/scheduler/scheduler_jobs"

	"github.com/robfig/cron/v3"
)

// SetupCron wires the recurring grading sweep and runs one sweep immediately
// so a restart never leaves picks stranded until the next tick.
func SetupCron(deps scheduler_jobs.Deps, cronSpec string) (*cron.Cron, error) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc(cronSpec, func() {
		if _, jobErr := scheduler_jobs.GradePendingPicks(deps); jobErr != nil {
			fmt.Println(jobErr)
			deps.DB.Create(&models.ErrorLog{
				Source:  "CRON",
				Message: fmt.Sprintf("%v", jobErr),
			})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling grading sweep: %w", err)
	}

	go func() {
		if _, jobErr := scheduler_jobs.GradePendingPicks(deps); jobErr != nil {
			log.Printf("Initial grading sweep failed: %v", jobErr)
		}
	}()

	cronService.Start()
	return cronService, nil
}
