package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"liveshellwave/internal/config"
	"liveshellwave/internal/encoder"
	"liveshellwave/internal/logging"
	"liveshellwave/internal/output"
	"liveshellwave/internal/preset"
	"liveshellwave/internal/protocol"
)

// Result describes what one run produced
type Result struct {
	Platform string
	Duration time.Duration
	Files    []string
	Uploads  []string
	Played   bool
}

// Application represents the main application
type Application struct {
	config     Config
	logger     *logrus.Logger
	logRotator *logging.Rotator
	encoder    *encoder.Encoder
	player     output.Player
	exporter   output.Exporter
	uploader   output.Exporter
	now        func() time.Time
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if config.OutDir == "" {
		config.OutDir = DefaultOutDir
	}

	return &Application{
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Logger returns the application logger
func (app *Application) Logger() *logrus.Logger {
	return app.logger
}

// Run encodes the profile once and hands the signal to every selected sink
func (app *Application) Run(ctx context.Context) (*Result, error) {
	defer app.shutdown()

	if err := app.initializeComponents(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Debug("Starting LiveShell Wave")

	cfg, platform, err := app.loadConfiguration()
	if err != nil {
		return nil, err
	}

	signal, err := app.encoder.Encode(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Platform: platform,
		Duration: signal.Duration(),
	}

	app.logger.WithFields(logrus.Fields{
		"platform":    platform,
		"device":      cfg.Device.String(),
		"sample_rate": signal.SampleRate,
		"duration":    signal.Duration().Round(time.Millisecond),
	}).Info("Encoded configuration")

	if app.config.writesFile() {
		name := app.config.OutputPath
		if name == "" {
			name = output.FileName(platform, app.now())
		}
		path, err := app.exporter.Export(ctx, signal, name)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
	}

	if app.config.Upload {
		key, err := output.ObjectKey(platform)
		if err != nil {
			return result, fmt.Errorf("failed to generate object key: %w", err)
		}
		location, err := app.uploader.Export(ctx, signal, key)
		if err != nil {
			return result, err
		}
		result.Uploads = append(result.Uploads, location)
	}

	if app.config.Play {
		app.logger.WithField("duration", signal.Duration().Round(time.Millisecond)).Info("Playing signal, hold the device close to the speaker")
		if err := app.player.Play(ctx, signal.Samples, signal.SampleRate); err != nil {
			return result, err
		}
		result.Played = true
	}

	return result, nil
}

// initializeComponents creates every component not injected beforehand
func (app *Application) initializeComponents(ctx context.Context) error {
	var err error

	if app.config.LogDir != "" && app.logRotator == nil {
		// Rotator diagnostics go to stderr only, never back into the rotator
		diagnostics := logrus.New()
		diagnostics.SetLevel(app.logger.GetLevel())

		app.logRotator, err = logging.NewRotator(app.config.LogDir, app.config.LogRotateUTC, diagnostics)
		if err != nil {
			return fmt.Errorf("failed to initialize log rotator: %w", err)
		}
		app.logger.SetOutput(io.MultiWriter(os.Stderr, app.logRotator))

		if removed, err := app.logRotator.Cleanup(DefaultLogRetentionDays); err != nil {
			app.logger.WithError(err).Warn("Failed to clean up old log files")
		} else if removed > 0 {
			app.logger.WithField("removed", removed).Debug("Removed old log files")
		}
	}

	if app.encoder == nil {
		app.encoder = encoder.New(app.logger)
	}

	if app.exporter == nil {
		app.exporter = output.NewFileExporter(app.config.OutDir, app.logger)
	}

	if app.config.Play && app.player == nil {
		app.player, err = output.NewPlayer(app.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize audio output: %w", err)
		}
	}

	if app.config.Upload && app.uploader == nil {
		app.uploader, err = app.newUploader(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
	}

	return nil
}

func (app *Application) newUploader(ctx context.Context) (output.Exporter, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	storageConfig, err := config.NewStorageConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read storage configuration: %w", err)
	}

	storage, err := output.NewMinioStorage(storageConfig)
	if err != nil {
		return nil, err
	}

	if err := storage.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket %s: %w", storageConfig.Bucket, err)
	}

	app.logger.WithFields(logrus.Fields{
		"endpoint": storageConfig.Endpoint,
		"bucket":   storageConfig.Bucket,
	}).Debug("Object storage ready")

	return output.NewBlobExporter(storage, app.logger), nil
}

// loadConfiguration reads the profile and resolves the platform preset
func (app *Application) loadConfiguration() (protocol.Config, string, error) {
	path := app.config.ProfilePath
	if path == "" {
		path = config.FindProfile(config.ProfilePaths())
	}
	if path != "" {
		app.logger.WithField("profile", path).Debug("Loading profile")
	}

	profile, err := config.LoadProfile(path, app.config.Overrides)
	if err != nil {
		return protocol.Config{}, "", err
	}

	platform := profile.Platform
	if platform == "" {
		platform = preset.DefaultID
	}

	p, ok := preset.Lookup(platform)
	if !ok {
		return protocol.Config{}, "", &protocol.ConfigurationError{
			Field:  "platform",
			Reason: fmt.Sprintf("unknown platform %q", platform),
		}
	}

	if profile.Streaming.RTMPURL == "" && p.HasURL() {
		profile.Streaming.RTMPURL = p.RTMPURL
		app.logger.WithFields(logrus.Fields{
			"platform": p.ID,
			"rtmp_url": p.RTMPURL,
		}).Debug("Using preset RTMP URL")
	}

	cfg, err := profile.ProtocolConfig()
	if err != nil {
		return protocol.Config{}, "", err
	}

	return cfg, p.ID, nil
}

// shutdown releases resources held for the run
func (app *Application) shutdown() {
	if app.logRotator != nil {
		app.logger.SetOutput(os.Stderr)
		if err := app.logRotator.Close(); err != nil {
			app.logger.WithError(err).Error("Failed to close log rotator")
		}
		app.logRotator = nil
	}
}
