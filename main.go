package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"plantmanager/cmd"
	"plantmanager/internal/api"
	"plantmanager/internal/db"
	"plantmanager/internal/logging"
	"plantmanager/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Logs go to a file so they never draw over the TUI.
	if err := logging.Initialize(config.LogLevel, config.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer logging.Sync()

	client := api.NewClient(config.APIURL)

	// Open database
	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer database.Close()

	logging.Info("starting plantmanager",
		zap.String("version", version),
		zap.String("api_url", config.APIURL),
		zap.String("db", config.DBPath),
	)

	// Quitting cancels any fetch or save still in flight.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(ui.New(ctx, database, client, ui.Options{UserName: config.UserName}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("app exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		return 1
	}
	return 0
}
