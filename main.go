package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/usemanusai/uploadprep-mcp/config"
	"github.com/usemanusai/uploadprep-mcp/envscan"
	"github.com/usemanusai/uploadprep-mcp/filter"
	"github.com/usemanusai/uploadprep-mcp/server"
	"github.com/usemanusai/uploadprep-mcp/tools"
	"github.com/usemanusai/uploadprep-mcp/upload"
	"github.com/usemanusai/uploadprep-mcp/watcher"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// excludePatterns collects repeatable -exclude flags.
type excludePatterns []string

func (e *excludePatterns) String() string {
	return fmt.Sprintf("%v", *e)
}

func (e *excludePatterns) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	// Optional .env for server configuration; absence is fine.
	_ = godotenv.Load()

	var excludes excludePatterns
	rootDir := flag.String("root", ".", "root directory to serve")
	batchSize := flag.Int("batch-size", upload.DefaultBatchSize, "files per upload batch")
	logLevel := flag.String("log-level", envOr("UPLOADPREP_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	logFile := flag.String("log-file", os.Getenv("UPLOADPREP_LOG_FILE"), "log file path (default: uploadprep-mcp.log in root)")
	flag.Var(&excludes, "exclude", "additional exclude pattern (repeatable)")
	flag.Parse()

	absRoot, err := filepath.Abs(*rootDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid root directory %q: %v\n", *rootDir, err)
		os.Exit(1)
	}

	logger, logCleanup := setupLogger(*logLevel, *logFile, absRoot)
	defer logCleanup()

	cfg, err := config.Load(absRoot)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	extraRules := make([]filter.Rule, 0, len(excludes))
	for _, pattern := range excludes {
		extraRules = append(extraRules, filter.Rule{Pattern: pattern, Kind: filter.KindExclude})
	}
	envPatterns := envscan.DefaultFilePatterns
	resolvedBatch := *batchSize
	if cfg != nil {
		configRules, err := cfg.FilterRules()
		if err != nil {
			logger.Error("invalid rule in config", "error", err)
			os.Exit(1)
		}
		extraRules = append(configRules, extraRules...)
		if len(cfg.EnvFilePatterns) > 0 {
			envPatterns = cfg.EnvFilePatterns
		}
		if cfg.BatchSize > 0 && *batchSize == upload.DefaultBatchSize {
			resolvedBatch = cfg.BatchSize
		}
	}

	engine := filter.NewEngine(filter.Options{
		RootDir:    absRoot,
		ExtraRules: extraRules,
	})
	scanner := envscan.NewScanner(envPatterns, logger)

	ruleWatcher, err := watcher.New(absRoot, []string{".gitignore", ".uploadignore"}, logger)
	if err != nil {
		logger.Warn("rule file watcher unavailable", "error", err)
	} else {
		defer ruleWatcher.Close()
		go ruleWatcher.Start()
		go func() {
			for changed := range ruleWatcher.Events() {
				logger.Info("ignore files changed, reloading", "files", changed)
				engine.Reload()
			}
		}()
	}

	uploader := &upload.NopUploader{Logger: logger}

	mcpServer := server.Setup(
		&tools.UploadHandler{
			Engine:    engine,
			Scanner:   scanner,
			Uploader:  uploader,
			RootDir:   absRoot,
			BatchSize: resolvedBatch,
			Logger:    logger,
		},
		&tools.EnvExampleHandler{Scanner: scanner, RootDir: absRoot, Logger: logger},
		&tools.ListRulesHandler{Engine: engine, Logger: logger},
		&tools.AddFilterHandler{Engine: engine, Logger: logger},
		&tools.DryRunHandler{Engine: engine, RootDir: absRoot, Logger: logger},
		&tools.ScanEnvHandler{Scanner: scanner, RootDir: absRoot, Logger: logger},
	)

	logger.Info("starting uploadprep-mcp server",
		"root", absRoot,
		"batchSize", resolvedBatch,
		"extraRules", len(extraRules),
	)

	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// setupLogger builds a text slog logger writing to a file. Stdout is
// reserved for the MCP transport, so logging falls back to stderr when
// the file cannot be opened.
func setupLogger(level, path, rootDir string) (*slog.Logger, func()) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelInfo
	}

	if path == "" {
		path = filepath.Join(rootDir, "uploadprep-mcp.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
		logger.Warn("cannot open log file, logging to stderr", "path", path, "error", err)
		return logger, func() {}
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slogLevel}))
	return logger, func() { f.Close() }
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
