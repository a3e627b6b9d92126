package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/iwvelando/loan-calc/internal/calculator"
	"github.com/iwvelando/loan-calc/internal/config"
	"github.com/iwvelando/loan-calc/internal/desktop"
	"github.com/iwvelando/loan-calc/internal/logging"
	"github.com/iwvelando/loan-calc/internal/storage"
	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
	"github.com/iwvelando/loan-calc/pkg/loans"
	"github.com/iwvelando/loan-calc/pkg/output"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// runReport prints the figures for in and returns without opening a window.
func runReport(w io.Writer, in calculator.Inputs, outputFormat string, formatter *format.Formatter, logger *zap.Logger) error {
	for _, warning := range in.Warnings() {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main.runReport"),
		)
	}
	in = in.Normalize()

	switch outputFormat {
	case constants.OutputFormatPretty:
		return output.PrettyFormat(w, in.Report(), formatter)
	case constants.OutputFormatCSV:
		schedule, err := loans.NewAmortizationScheduleGenerator(logger).GenerateSchedule(in.LoanConfig())
		if err != nil {
			return fmt.Errorf("failed to generate amortization schedule: %w", err)
		}
		return output.CsvFormat(w, schedule)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// openStore opens the configured backend; the preferences backend needs the
// fyne application.
func openStore(ctx context.Context, fyneApp fyne.App, cfg storage.Config, logger *zap.Logger) (storage.Store, error) {
	if cfg.Backend == constants.StorageBackendPreferences {
		return desktop.NewPreferencesStore(fyneApp.Preferences()), nil
	}
	return storage.Open(ctx, cfg, logger)
}

func main() {
	// Variables from a local .env file feed the LOANCALC_ overrides.
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of report output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	report := flag.Bool("report", false, "print the saved loan figures and exit instead of opening the window")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		logging.FatalBeforeLogger(fmt.Sprintf("failed to load configuration at %s", *configLocation), err)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		logging.FatalBeforeLogger("failed to initialize logger", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	formatter, err := conf.Formatter()
	if err != nil {
		logger.Fatal("failed to build number formatter",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Report mode only needs fyne for the preferences backend.
	var fyneApp fyne.App
	if !*report || conf.Storage.Backend == constants.StorageBackendPreferences {
		fyneApp = app.NewWithID(constants.AppID)
	}
	ctx := context.Background()

	store, err := openStore(ctx, fyneApp, conf.Storage, logger)
	if err != nil {
		logger.Fatal("failed to open storage",
			zap.String("op", "main"),
			zap.String("backend", conf.Storage.Backend),
			zap.Error(err),
		)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close storage",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	if *report {
		in := calculator.Load(ctx, store, constants.AppKey, logger)
		if err := runReport(os.Stdout, in, conf.Output.Format, formatter, logger); err != nil {
			logger.Error("failed to write report",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	ui := desktop.New(fyneApp, store, formatter, desktop.Options{
		Width:       conf.Window.Width,
		Height:      conf.Window.Height,
		SliderWidth: conf.Window.SliderWidth,
		Theme:       conf.Window.Theme,
	}, logger)

	logger.Info("starting loan-calc",
		zap.String("op", "main"),
		zap.String("storage", conf.Storage.Backend),
	)
	ui.Run()
}
