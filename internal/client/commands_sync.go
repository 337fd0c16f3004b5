// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/planner-sync/internal/tui"
)

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			syncService := c.app.SyncService()
			if _, err := syncService.Initialize(cmd.Context()); err != nil {
				return err
			}

			st := syncService.GetStatus()
			var b strings.Builder
			fmt.Fprintf(&b, "enabled:   %t\n", st.Enabled)
			fmt.Fprintf(&b, "version:   %d\n", st.Version)
			fmt.Fprintf(&b, "last sync: %s", formatTime(st.LastSync))
			return c.print(cmd, st, b.String())
		},
	}
}

func (c *cli) syncCmd() *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push local changes and pull newer server data",
		Long: `Run one sync cycle. Local edits made since the last push are pushed
first, then newer server data is pulled and merged into the local database.

Pass --push to upload the local dataset even when nothing was edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			syncService := c.app.SyncService()
			if _, err := syncService.Initialize(cmd.Context()); err != nil {
				return err
			}
			if push {
				syncService.MarkLocalChanges()
			}

			res := syncService.Sync(cmd.Context(), true)
			text := fmt.Sprintf("%s (version %d, pushed: %t, pulled: %t)", res.Message, res.Version, res.Pushed, res.Pulled)
			return c.printResult(cmd, res, res.Status, text)
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "push the local dataset even without local edits")

	return cmd
}

func (c *cli) testCmd() *cobra.Command {
	var serverURL, secretKey string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the server is reachable and accepts the secret key",
		Long: `Check the server health and authenticate with the secret key. Values not
given as flags are taken from the settings record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			syncService := c.app.SyncService()

			stored, err := syncService.GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			if stored != nil {
				if !cmd.Flags().Changed("server-url") {
					serverURL = stored.ServerURL
				}
				if !cmd.Flags().Changed("secret-key") {
					secretKey = stored.SecretKey
				}
			}

			res := syncService.TestConnection(cmd.Context(), serverURL, secretKey)
			text := res.Message
			if res.ServerStatus != "" {
				text = fmt.Sprintf("%s (server status: %s)", res.Message, res.ServerStatus)
			}
			return c.printResult(cmd, res, res.Status, text)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "sync server base URL")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "shared secret key")

	return cmd
}

func (c *cli) putCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <collection> <json-file>",
		Short: "Replace one planner collection with the content of a JSON file",
		Long: `Replace one planner collection (columns, weeks, calendar or settings) as a
local edit. Use - to read the JSON from stdin. A running "planner-sync run"
notices the edit and syncs it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, path := args[0], args[1]

			var (
				body []byte
				err  error
			)
			if path == "-" {
				body, err = io.ReadAll(cmd.InOrStdin())
			} else {
				body, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			if err = c.app.Snapshots().Put(cmd.Context(), collection, json.RawMessage(body)); err != nil {
				return err
			}

			result := map[string]string{"collection": collection, "status": "updated"}
			return c.print(cmd, result, fmt.Sprintf("Collection %s updated", collection))
		},
	}
}

func (c *cli) deleteRemoteCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete-remote",
		Short: "Delete the dataset stored on the server for the secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errDeleteNotConfirmed
			}

			syncService := c.app.SyncService()
			if _, err := syncService.Initialize(cmd.Context()); err != nil {
				return err
			}

			res := syncService.DeleteServerData(cmd.Context())
			return c.printResult(cmd, res, res.Status, res.Message)
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the deletion")

	return cmd
}

func (c *cli) runCmd() *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Keep the local planner in sync until interrupted",
		Long: `Sync once, then watch the local database: edits are pushed after a quiet
period and auto-sync runs on the configured interval. Stops on SIGINT or
SIGTERM, or when the dashboard (--tui) is closed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if push {
				c.app.SyncService().MarkLocalChanges()
			}

			var runner Client = c.app
			if !c.flags.tui {
				fmt.Fprintln(cmd.OutOrStdout(), "Syncing, press Ctrl+C to stop")
				return runner.Run(ctx)
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			runErr := make(chan error, 1)
			go func() { runErr <- runner.Run(ctx) }()

			dashboardErr := tui.New(c.app.SyncService(), c.info, c.app.logger).Dashboard(ctx)
			cancel()

			return errors.Join(dashboardErr, <-runErr)
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "push the local dataset on start even without local edits")
	cmd.Flags().BoolVar(&c.flags.tui, "tui", false, "show a live sync dashboard")

	return cmd
}
