package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	api "tarot-backend/cmd/api"
	authRepo "tarot-backend/internal/auth/repository"
	contentRepo "tarot-backend/internal/content/repository"
	"tarot-backend/internal/daily"
	"tarot-backend/internal/notification"
	notifRepo "tarot-backend/internal/notification/repository"
	"tarot-backend/internal/notification/scheduler"
	readingRepo "tarot-backend/internal/reading/repository"
	"tarot-backend/pkg/config"
	"tarot-backend/pkg/database"
	pkglogger "tarot-backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Global flags
	verbose bool

	// daily / deliver flags
	dateFlag string
	signFlag string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tarot",
	Short: "Tarot reading backend",
	Long: `Serves the tarot API: card catalog, AI interpretations with caching,
the deterministic card of the day, reading history and daily delivery.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = pkglogger.New(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server, the daily delivery scheduler and the Pub/Sub trigger",
	RunE:  runServe,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the card of the day",
	Long: `Prints the global card of the day, or the card of a zodiac sign.

Example:
  tarot daily --date 2025-01-01
  tarot daily --sign leo`,
	RunE: runDaily,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE:  runMigrate,
}

var deliverCmd = &cobra.Command{
	Use:   "deliver",
	Short: "Run one daily delivery pass",
	Long: `Sends the card of the day to every subscriber not yet served.
With --date the pass runs as of the end of that day.`,
	RunE: runDeliver,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	dailyCmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD), defaults to today")
	dailyCmd.Flags().StringVar(&signFlag, "sign", "", "Zodiac sign id (aries ... pisces)")
	deliverCmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD), defaults to now")

	rootCmd.AddCommand(serveCmd, dailyCmd, migrateCmd, deliverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database; without one the server runs the stateless features only
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logger.Warn("database unavailable", zap.Error(err))
	} else {
		defer database.Close(db)
		if err := migrate(db); err != nil {
			return err
		}
	}

	handler := api.NewHandler(ctx, cfg, db, logger)
	defer handler.Close()

	if delivery := handler.Delivery(); delivery != nil && delivery.Enabled() {
		sched := scheduler.NewDailyCardScheduler(delivery, scheduler.DefaultInterval, logger)
		sched.Start()
		defer sched.Stop()

		// Initialize Notification Service (Pub/Sub)
		// Only start if project ID is configured
		if cfg.GoogleProjectID != "" {
			// Extract short topic name from full resource name if necessary
			topicName := cfg.GooglePubSubTopic
			if parts := strings.Split(topicName, "/"); len(parts) > 1 {
				topicName = parts[len(parts)-1]
			}
			if topicName == "" {
				topicName = "daily-card"
			}

			notifService, err := notification.NewService(ctx, cfg.GoogleProjectID, topicName, cfg.GoogleCredentials, delivery, cfg.Location(), logger)
			if err != nil {
				logger.Error("failed to initialize notification service", zap.Error(err))
			} else {
				defer notifService.Close()
				go notifService.Start(ctx)
			}
		} else {
			logger.Info("GOOGLE_PROJECT_ID not configured, Pub/Sub trigger disabled")
		}
	} else {
		logger.Info("daily delivery disabled")
	}

	return handler.Start(ctx, ":"+cfg.Port)
}

func runDaily(cmd *cobra.Command, args []string) error {
	svc := daily.NewService(cfg.Location())

	date := svc.Today()
	if dateFlag != "" {
		var err error
		if date, err = svc.ParseDate(dateFlag); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if signFlag == "" {
		card := svc.CardOfTheDay(date)
		fmt.Fprintf(out, "%s  %s (%s)\n", date.Format(daily.DateLayout), card.Name, card.ID)
		return nil
	}

	card, sign, err := svc.SignCard(date, signFlag)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s  %s: %s (%s)\n", date.Format(daily.DateLayout), sign.Name, card.Name, card.ID)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := migrate(db); err != nil {
		return err
	}
	logger.Info("database migrated")
	return nil
}

func runDeliver(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	dailySvc := daily.NewService(cfg.Location())
	delivery := api.NewDeliveryService(ctx, cfg, db, dailySvc, logger)
	if !delivery.Enabled() {
		return fmt.Errorf("no delivery channel configured")
	}

	now := dailySvc.Today()
	if dateFlag != "" {
		date, err := dailySvc.ParseDate(dateFlag)
		if err != nil {
			return err
		}
		now = notification.EndOfDay(date)
	}

	result, err := delivery.DeliverAll(ctx, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: due=%d sent=%d failed=%d pushed=%d\n",
		result.Date, result.Due, result.Sent, result.Failed, result.Pushed)
	return nil
}

// migrate creates every table the repositories use
func migrate(db *gorm.DB) error {
	for name, fn := range map[string]func(*gorm.DB) error{
		"readings":    readingRepo.AutoMigrate,
		"fcm tokens":  authRepo.AutoMigrate,
		"subscribers": notifRepo.AutoMigrate,
		"content":     contentRepo.AutoMigrate,
	} {
		if err := fn(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
	}
	return nil
}
