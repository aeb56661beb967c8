package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/Mide6x/OpenSS/pkg/adapter"
	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/repository"
	"github.com/Mide6x/OpenSS/pkg/usecase/retention"
	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/Mide6x/OpenSS/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Repository
	store    string
	project  string
	database string

	// Adapters
	openaiAPIKey string
	geminiAPIKey string
	ocrCommand   string

	// Process
	logLevel   string
	workDir    string
	configPath string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Session store backend (firestore, memory)",
			Value:       "firestore",
			Sources:     cli.EnvVars("OPENSS_STORE"),
			Destination: &cfg.store,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("OPENSS_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Directory for capture artifacts",
			Sources:     cli.EnvVars("OPENSS_WORK_DIR"),
			Destination: &cfg.workDir,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to config file",
			Sources:     cli.EnvVars("OPENSS_CONFIG"),
			Destination: &cfg.configPath,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &cfg.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "ocr-command",
			Usage:       "External OCR command printing recognized text to stdout",
			Sources:     cli.EnvVars("OPENSS_OCR_COMMAND"),
			Destination: &cfg.ocrCommand,
		},
	}
}

// bootstrap prepares the per-process environment shared by all commands:
// the logger, the user config, the artifact directory, and one retention
// sweep. Sweep failures are logged, not fatal.
func (cfg *config) bootstrap(ctx context.Context) (context.Context, *model.Config, error) {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	ctx = logging.With(ctx, logger)

	userCfg, err := model.LoadConfig(cfg.userConfigPath())
	if err != nil {
		return ctx, nil, err
	}

	dir := cfg.artifactDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ctx, nil, goerr.Wrap(err, "failed to create artifact directory", goerr.V("dir", dir))
	}

	if _, err := retention.Sweep(ctx, dir, userCfg.Retention(), time.Now()); err != nil {
		logger.Warn("artifact retention sweep failed", "error", err)
	}

	return ctx, userCfg, nil
}

func (cfg *config) userConfigPath() string {
	if cfg.configPath != "" {
		return cfg.configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".openss", "config.yml")
	}
	return filepath.Join(home, ".openss", "config.yml")
}

func (cfg *config) artifactDir() string {
	if cfg.workDir != "" {
		return cfg.workDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".openss", "shots")
	}
	return filepath.Join(home, ".openss", "shots")
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.store == "memory" {
		return repository.NewMemory(), nil
	}

	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newCompleters builds the provider registry from the configured API keys.
// At least one provider must be available.
func (cfg *config) newCompleters(ctx context.Context) (*adapter.Completers, *adapter.GeminiClient, error) {
	completers := adapter.NewCompleters()

	var gemini *adapter.GeminiClient
	if cfg.geminiAPIKey != "" {
		g, err := adapter.NewGemini(ctx, cfg.geminiAPIKey)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create gemini client")
		}
		gemini = g
		completers.Register(model.ProviderGemini, g)
	}

	if cfg.openaiAPIKey != "" {
		completers.Register(model.ProviderOpenAI, adapter.NewOpenAI(cfg.openaiAPIKey))
	}

	if cfg.openaiAPIKey == "" && cfg.geminiAPIKey == "" {
		return nil, nil, goerr.New("no provider configured, set openai-api-key or gemini-api-key")
	}

	return completers, gemini, nil
}

// newExtractors returns the primary extractor and the optional multimodal
// fallback. An external OCR command takes priority; without one the vision
// model does the extraction directly.
func (cfg *config) newExtractors(userCfg *model.Config, gemini *adapter.GeminiClient) (primary, fallback adapter.Extractor, err error) {
	var vision adapter.Extractor
	if gemini != nil {
		vision = adapter.NewGeminiExtractor(gemini, userCfg.OCRTimeout())
	}

	if cfg.ocrCommand != "" {
		primary = adapter.NewCommandOCR(cfg.ocrCommand,
			adapter.WithOCRLanguages(userCfg.OCRLanguages),
			adapter.WithOCRTimeout(userCfg.OCRTimeout()),
		)
		return primary, vision, nil
	}

	if vision == nil {
		return nil, nil, goerr.New("no extractor available, set ocr-command or gemini-api-key")
	}
	return vision, nil, nil
}

// newRecorder creates a voice recorder backed by OpenAI transcription.
// Returns nil when no OpenAI key is configured; voice actions then fail
// with a clear error instead of at startup.
func (cfg *config) newRecorder() adapter.VoiceRecorder {
	if cfg.openaiAPIKey == "" {
		return nil
	}
	return adapter.NewMicRecorder(adapter.NewOpenAI(cfg.openaiAPIKey))
}

// newUseCase wires the full pipeline for commands that talk to the model
func (cfg *config) newUseCase(ctx context.Context, userCfg *model.Config) (*session.UseCase, repository.Repository, error) {
	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	completers, gemini, err := cfg.newCompleters(ctx)
	if err != nil {
		return nil, nil, err
	}

	extractor, fallback, err := cfg.newExtractors(userCfg, gemini)
	if err != nil {
		return nil, nil, err
	}

	screen := adapter.NewScreen()

	uc := session.New(session.NewInput{
		Repo:       repo,
		Completers: completers,
		Extractor:  extractor,
		Fallback:   fallback,
		Windows:    screen,
		Screen:     screen,
		Recorder:   cfg.newRecorder(),
		Config:     userCfg,
		WorkDir:    cfg.artifactDir(),
	})
	return uc, repo, nil
}
