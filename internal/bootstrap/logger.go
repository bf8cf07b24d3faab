package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/logger"
)

// closerFunc adapts a function to io.Closer
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// SetupLogger installs the application logger. With a log directory configured it
// writes to stdout and a size-rotated file; the caller closes the returned writer.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	loggerConfig := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)

	var closer io.Closer = closerFunc(func() error { return nil })
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, LogFileName),
			MaxSize:    LogFileMaxSizeMB,
			MaxBackups: LogFileMaxBackups,
			MaxAge:     LogFileMaxAgeDays,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}
	logger.InitLoggerWithWriter(loggerConfig, out)

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "log_dir", cfg.LogDir)
	slog.Info(LogMsgStartingRacks,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"storage", cfg.StorageBackend,
		"jackpot_backend", cfg.JackpotBackend,
		"port", cfg.Port)

	return closer, nil
}
