// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

type globalFlags struct {
	configFile     string
	dbPath         string
	logFile        string
	requestTimeout time.Duration
	jsonOutput     bool
	verbose        bool
	tui            bool
}

// cli holds the state shared by the commands of one invocation.
type cli struct {
	info  models.AppBuildInfo
	flags globalFlags
	app   *App
}

// Execute runs the planner-sync CLI with args, writing command output to out.
// The local store is closed before Execute returns.
func Execute(ctx context.Context, info models.AppBuildInfo, args []string, out io.Writer) (err error) {
	c := &cli{info: info}

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)

	defer func() {
		if c.app != nil {
			err = errors.Join(err, c.app.Close())
		}
	}()

	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planner-sync",
		Short: "Sync the local planner with a planner sync server",
		Long: `planner-sync keeps a local planner database in sync with a sync server.

The server URL and the secret key live in the local settings record. Every
device that uses the same secret key shares one dataset.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.openApp,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.configFile, "config", "c", "", "JSON config file path")
	pf.StringVar(&c.flags.dbPath, "db", "", "local planner database (default planner.db)")
	pf.StringVar(&c.flags.logFile, "log-file", "", "rotated log file (default stderr)")
	pf.DurationVar(&c.flags.requestTimeout, "request-timeout", 0, "timeout of every server request (default 30s)")
	pf.BoolVar(&c.flags.jsonOutput, "json", false, "print results as JSON")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		c.versionCmd(),
		c.initCmd(),
		c.configCmd(),
		c.statusCmd(),
		c.syncCmd(),
		c.testCmd(),
		c.putCmd(),
		c.deleteRemoteCmd(),
		c.runCmd(),
	)

	return root
}

// openApp loads the client config and opens the local store. Commands that
// need neither skip it.
func (c *cli) openApp(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	cfg, err := config.GetClientConfig(&config.StructuredConfig{
		JSONFilePath: c.flags.configFile,
		Client: config.Client{
			DBPath:         c.flags.dbPath,
			LogFile:        c.flags.logFile,
			RequestTimeout: c.flags.requestTimeout,
		},
	})
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("planner-sync", cfg.Log.File)
	switch {
	case cfg.Log.File != "":
	case c.flags.tui:
		// the dashboard owns the terminal
		log = logger.Nop()
	case !c.flags.verbose:
		// one-shot commands print their own results
		log = &logger.Logger{Logger: log.Level(zerolog.WarnLevel)}
	}
	log.Debug().Any("config", cfg.Storage).Msg("received configs")

	c.app, err = NewApp(cmd.Context(), cfg, log)
	return err
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", c.info.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", c.info.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", c.info.BuildCommit())
			return nil
		},
	}
}

// print writes v as indented JSON when --json is set, or text otherwise.
func (c *cli) print(cmd *cobra.Command, v any, text string) error {
	out := cmd.OutOrStdout()
	if c.flags.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

// printResult prints a result and turns a failed status into an error so
// that the process exits non-zero.
func (c *cli) printResult(cmd *cobra.Command, v any, status models.ResultStatus, message string) error {
	if status == models.StatusError {
		if c.flags.jsonOutput {
			if err := c.print(cmd, v, message); err != nil {
				return err
			}
		}
		return fmt.Errorf("%w: %s", errOperationFailed, message)
	}
	return c.print(cmd, v, message)
}
