package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from ctx.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// Resolve loads the effective config.
// Priority for the file: --config flag > nearest .jiraref.yaml upward from workDir > defaults.
// Priority for the project name: --project-name flag > JIRAREF_PROJECT_NAME > file.
func Resolve(ctx context.Context, flags *pflag.FlagSet, workDir string) (*Config, error) {
	log := GetLogger(ctx)

	path := ""
	if flags != nil {
		if p, _ := flags.GetString("config"); p != "" && flags.Changed("config") {
			path = p
		}
	}
	if path == "" {
		path = Find(workDir)
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.DebugContext(ctx, "loaded config", "path", path, "rules", len(cfg.Rules))
	} else {
		log.DebugContext(ctx, "no config file found", "dir", workDir)
	}

	if flags != nil {
		if name, _ := flags.GetString("project-name"); name != "" && flags.Changed("project-name") {
			log.DebugContext(ctx, "project name from flag", "project", name)
			cfg.SetProjectName(name)
			return cfg, nil
		}
	}
	if name := os.Getenv(EnvProjectName); name != "" {
		log.DebugContext(ctx, "project name from environment", "project", name)
		cfg.SetProjectName(name)
	}
	return cfg, nil
}
