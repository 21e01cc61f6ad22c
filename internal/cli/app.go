package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/ticketboard/internal/auth"
	"github.com/idilsaglam/ticketboard/internal/config"
	"github.com/idilsaglam/ticketboard/internal/logging"
	"github.com/idilsaglam/ticketboard/internal/source"
	"github.com/idilsaglam/ticketboard/internal/ui"
)

// flags holds the persistent flag values; only flags the user set override
// the config file.
type flags struct {
	configPath string
	endpoint   string
	file       string
	groupBy    string
	sortBy     string
	theme      string
	logLevel   string
	noColor    bool
}

// app is the state shared by every command once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  flags

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// load reads the config file, applies flag overrides and sets up logging.
// logToFile sends logs to the log file instead of stderr.
func (a *app) load(cmd *cobra.Command, logToFile bool) error {
	path := a.flags.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return usagef("config: %w", err)
	}

	fs := cmd.Flags()
	if fs.Changed("endpoint") {
		cfg.Source.Endpoint = a.flags.endpoint
		cfg.Source.File = ""
	}
	if fs.Changed("file") {
		cfg.Source.File = config.ExpandPath(a.flags.file)
	}
	if fs.Changed("group-by") {
		cfg.Board.GroupBy = a.flags.groupBy
	}
	if fs.Changed("sort-by") {
		cfg.Board.SortBy = a.flags.sortBy
	}
	if fs.Changed("theme") {
		cfg.UI.Theme = a.flags.theme
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	if a.flags.noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColor()
	}

	if logToFile {
		logPath := cfg.Log.File
		if logPath == "" {
			dir, err := auth.Dir()
			if err != nil {
				return err
			}
			logPath = filepath.Join(dir, "ticketboard.log")
		}
		logger, closer, err := logging.NewFile(logPath, cfg.Log.Level)
		if err != nil {
			return err
		}
		a.logger, a.closer = logger, closer
		return nil
	}
	logger, err := logging.New(a.stderr, cfg.Log.Level)
	if err != nil {
		return usageError{err}
	}
	a.logger = logger
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// source builds the configured ticket source, attaching the stored token.
func (a *app) source() (source.Source, error) {
	token := ""
	ti, err := auth.GetToken()
	if err != nil {
		a.logger.Warn("ignoring unreadable credentials", "error", err)
	} else if ti != nil {
		token = ti.Token
	}
	src, err := source.New(a.cfg.Source, token, a.logger)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return src, nil
}

// fetchContext bounds a one-shot fetch by the configured timeout.
func (a *app) fetchContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, a.cfg.Source.Timeout.Duration)
}
