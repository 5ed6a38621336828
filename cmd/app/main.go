// Imaging Workbench application entry point
package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"imaging-workbench/internal/config"
	"imaging-workbench/internal/gui"
)

const appID = "io.workbench.imaging"

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "workbench.yaml", "Path to the settings file")
	flag.Parse()

	// Optional .env overrides, loaded before the config reads the
	// environment. A missing file is fine.
	_ = godotenv.Load()

	cfg, cfgErr := config.Load(*configPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	if *debugMode {
		cfg.Debug = true
	}

	logger := initLogger(cfg)
	if cfgErr != nil {
		logger.WithError(cfgErr).Warn("Falling back to default settings")
	}
	logger.WithFields(logrus.Fields{
		"debug_mode": cfg.Debug,
		"window":     cfg.Window,
	}).Info("Starting Imaging Workbench")

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.DocumentIcon())
	fyneApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(fyneApp, cfg, logger)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger configures logrus from the settings: debug gets a colored
// text formatter, everything else structured JSON.
func initLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
		return logger
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
