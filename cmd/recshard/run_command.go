package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"recshard/internal/daemon"
	"recshard/internal/logging"
	"recshard/internal/organizer"
	"recshard/internal/services"
)

// keepRunLogs is how many of the newest run logs retention never removes.
const keepRunLogs = 5

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the organizer loop until interrupted",
		Long:  "Run the organizer loop in the foreground. It never finishes on its own; stop it with Ctrl+C or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganizer(cmd, ctx)
		},
	}
}

func runOrganizer(cmd *cobra.Command, ctx *commandContext) error {
	if ctx == nil {
		return fmt.Errorf("command context is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()
	logPath := logging.RunLogPath(cfg.Paths.LogDir, runID)
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{logPath},
		Writer:      cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{
			Dir:        cfg.Paths.LogDir,
			Pattern:    "recshard-*.log",
			Exclude:    []string{logPath},
			KeepNewest: keepRunLogs,
		},
	)

	runCtx := services.WithRunID(signalCtx, runID)
	org := organizer.NewFromConfig(cfg, logger)
	d, err := daemon.New(cfg, logger, org)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	return d.Run(runCtx)
}
