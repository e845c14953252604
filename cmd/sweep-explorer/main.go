package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/unklstewy/flapsim/internal/db"
	"github.com/unklstewy/flapsim/pkg/config"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	fromDB := flag.Bool("db", false, "Load the latest stored sweeps instead of computing them")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sweep-explorer version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCfg := &AppConfig{Config: cfg}
	if *fromDB {
		database, err := db.Connect(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		appCfg.Repository = db.NewSweepRepository(database)
	}

	app, err := NewApp(ctx, appCfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// printHelp prints usage information
func printHelp() {
	fmt.Println("sweep-explorer - Terminal browser for high-lift device sweeps")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  sweep-explorer [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        Path to configuration file (default: configs/config.json)")
	fmt.Println("  -db")
	fmt.Println("        Load the latest stored sweeps from PostgreSQL")
	fmt.Println("  -version")
	fmt.Println("        Show version information")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("KEYBOARD SHORTCUTS:")
	fmt.Println("    ↑/↓ or j/k     Select device")
	fmt.Println("    m              Switch force model and recompute")
	fmt.Println("    SPACE          Pause/resume the preview")
	fmt.Println("    q or ESC       Quit application")
}
