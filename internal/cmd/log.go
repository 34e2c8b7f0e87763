package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils/logger"
)

func newLogCmd(o *rootOptions) *cobra.Command {
	var (
		name      string
		file      string
		threshold string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "log LEVEL MESSAGE...",
		Short: "Write a leveled log line",
		Long: `Write "[timestamp] [LEVEL] [name] message" to the console and, with
--file, to a log file. Lines below the threshold are dropped.

Levels: DEBUG, INFO, WARNING, ERROR, CRITICAL

Example:
  cb9 log warning "disk almost full" --name backup --file "$LOG"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.requireValid(); err != nil {
				return err
			}

			level, err := logger.ParseSeverity(args[0])
			if err != nil {
				return coreerrors.Wrap(err, coreerrors.CodeInvalidArgument, "invalid level")
			}

			cfg := o.cfg.Logger
			if name == "" {
				name = cfg.Name
			}
			if file == "" {
				file = cfg.File
			}
			if threshold == "" {
				threshold = cfg.Level
			}
			minLevel, err := logger.ParseSeverity(threshold)
			if err != nil {
				return coreerrors.Wrap(err, coreerrors.CodeInvalidArgument, "invalid threshold")
			}

			l := logger.New(name, minLevel,
				logger.WithFile(file),
				logger.WithConsole(cfg.Console && !quiet),
				logger.WithColor(cfg.Color),
				logger.WithWriter(cmd.OutOrStdout()),
			)
			return l.Log(level, strings.Join(args[1:], " "))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "Logger name shown in the line (default: logger.name)")
	flags.StringVarP(&file, "file", "f", "", "Also append to this file (default: logger.file)")
	flags.StringVarP(&threshold, "threshold", "t", "", "Minimum level to emit (default: logger.level)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not echo to the console")
	return cmd
}
