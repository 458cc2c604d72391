package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/chroniclehq/chronicle/pkg/internal"
	"github.com/chroniclehq/chronicle/pkg/internal/cache"
	"github.com/chroniclehq/chronicle/pkg/internal/database"
	"github.com/chroniclehq/chronicle/pkg/internal/http"
	"github.com/chroniclehq/chronicle/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____ _                     _      _\n / ___| |__  _ __ ___  _ __ (_) ___| | ___\n| |   | '_ \\| '__/ _ \\| '_ \\| |/ __| |/ _ \\\n| |___| | | | | | (_) | | | | | (__| |  __/\n \\____|_| |_|_|  \\___/|_| |_|_|\\___|_|\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Chronicle"), pkg.AppVersion)
	fmt.Printf("The blogging platform that stays out of your way\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewSource()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Promote the configured bootstrap superuser if it signed up before
	// the setting existed
	services.BootstrapSuperuser(db)

	// Build the local cache
	cacheStore, err := cache.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when building local cache.")
	}

	// Make sure the upload directory exists before anything lands in it
	uploadDir := viper.GetString("uploads.path")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing upload directory.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() {
		services.DoAutoDatabaseCleanup(db, uploadDir)
	})
	quartz.Start()

	// Server
	go http.NewServer(db, cacheStore).Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
