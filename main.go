package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"garyPicks/models"
	"garyPicks/scheduler"
	"garyPicks/scheduler/scheduler_jobs"
	"garyPicks/services"
	"garyPicks/services/common"
	"garyPicks/services/extService"
	"garyPicks/services/notifyService"
	"garyPicks/services/scoreService"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using process environment")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatalf("DATABASE_URL not set in environment variables")
	}

	u, err := dburl.Parse(connString)
	if err != nil {
		log.Fatalf("Error parsing DATABASE_URL: %v", err)
	}

	db, err = gorm.Open(mysql.Open(u.DSN+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Pick{},
		&models.PickLeg{},
		&models.Wager{},
		&models.UserDecision{},
		&models.UserStats{},
		&models.Bankroll{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func main() {
	seedBankroll(db)

	if err := services.RunUserStatsRebuildMigration(db); err != nil {
		log.Printf("User stats rebuild migration failed: %v", err)
	}

	apiKey := os.Getenv("ODDS_API_KEY")
	if apiKey == "" {
		log.Fatalf("ODDS_API_KEY not set in environment variables")
	}
	provider := extService.NewOddsAPIClient(apiKey, os.Getenv("STATS_API_URL"))
	normalizer := scoreService.NewNormalizer(provider, 15*time.Second)

	var notifier *notifyService.Notifier
	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		n, err := notifyService.New(token, os.Getenv("DISCORD_CHANNEL_ID"))
		if err != nil {
			log.Printf("Discord notifications disabled: %v", err)
		} else {
			notifier = n
			defer notifier.Close()
		}
	}

	metrics := common.NewSweepMetrics()
	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Printf("Metrics listener stopped: %v", err)
		}
	}()

	deps := scheduler_jobs.Deps{
		DB:          db,
		Normalizer:  normalizer,
		Notifier:    notifier,
		Metrics:     metrics,
		GraceWindow: graceWindow(),
	}

	cronSpec := os.Getenv("SWEEP_CRON")
	if cronSpec == "" {
		cronSpec = "0 0 */1 * * *"
	}
	cronService, err := scheduler.SetupCron(deps, cronSpec)
	if err != nil {
		log.Fatalf("Error setting up cron: %v", err)
	}
	defer cronService.Stop()

	log.Println("Grading engine is running. Press CTRL+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down")
}

func graceWindow() time.Duration {
	hours := 24
	if raw := os.Getenv("SWEEP_GRACE_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}

func seedBankroll(db *gorm.DB) {
	starting := decimal.NewFromInt(10000)
	if raw := os.Getenv("STARTING_BANKROLL"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil {
			starting = parsed
		}
	}

	var bankroll models.Bankroll
	result := db.FirstOrCreate(&bankroll, models.Bankroll{ID: 1})
	if result.Error != nil {
		log.Fatalf("Error seeding bankroll: %v", result.Error)
	}
	if result.RowsAffected > 0 {
		bankroll.CurrentAmount = starting
		bankroll.StartingAmount = starting
		bankroll.LastUpdated = time.Now()
		db.Save(&bankroll)
		log.Printf("Seeded bankroll at %s", starting.StringFixed(2))
	}
}
