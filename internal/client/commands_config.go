package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

// configView is the printable form of the settings record. The secret key
// is masked.
type configView struct {
	Enabled      bool       `json:"enabled"`
	ServerURL    string     `json:"serverUrl"`
	SecretKey    string     `json:"secretKey"`
	AutoSync     bool       `json:"autoSync"`
	SyncInterval string     `json:"syncInterval"`
	Version      int64      `json:"version"`
	LastSync     *time.Time `json:"lastSync,omitempty"`
}

func newConfigView(cfg models.SyncConfig) configView {
	secret := ""
	if cfg.SecretKey != "" {
		secret = logger.MaskSecret(cfg.SecretKey)
	}
	return configView{
		Enabled:      cfg.Enabled,
		ServerURL:    cfg.ServerURL,
		SecretKey:    secret,
		AutoSync:     cfg.AutoSync,
		SyncInterval: cfg.SyncInterval.String(),
		Version:      cfg.Version,
		LastSync:     cfg.LastSync,
	}
}

func (v configView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "enabled:       %t\n", v.Enabled)
	fmt.Fprintf(&b, "server url:    %s\n", v.ServerURL)
	fmt.Fprintf(&b, "secret key:    %s\n", orDash(v.SecretKey))
	fmt.Fprintf(&b, "auto-sync:     %t\n", v.AutoSync)
	fmt.Fprintf(&b, "sync interval: %s\n", v.SyncInterval)
	fmt.Fprintf(&b, "version:       %d\n", v.Version)
	fmt.Fprintf(&b, "last sync:     %s", formatTime(v.LastSync))
	return b.String()
}

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the local settings record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.app.SyncService().Initialize(cmd.Context())
			if err != nil {
				return err
			}
			view := newConfigView(cfg)
			return c.print(cmd, view, "Settings initialized\n"+view.String())
		},
	}
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the sync settings",
	}
	cmd.AddCommand(c.configShowCmd(), c.configSetCmd())
	return cmd
}

func (c *cli) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the sync settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.app.SyncService().GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			if cfg == nil {
				return errNotInitialized
			}
			view := newConfigView(*cfg)
			return c.print(cmd, view, view.String())
		},
	}
}

func (c *cli) configSetCmd() *cobra.Command {
	var (
		enabled   bool
		serverURL string
		secretKey string
		autoSync  bool
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the sync settings",
		Example: `  planner-sync config set --enabled --server-url https://sync.example.com --secret-key my-secret-key
  planner-sync config set --auto-sync=false
  planner-sync config set --interval 10m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update models.SyncConfigUpdate
			flags := cmd.Flags()
			if flags.Changed("enabled") {
				update.Enabled = &enabled
			}
			if flags.Changed("server-url") {
				update.ServerURL = &serverURL
			}
			if flags.Changed("secret-key") {
				update.SecretKey = &secretKey
			}
			if flags.Changed("auto-sync") {
				update.AutoSync = &autoSync
			}
			if flags.Changed("interval") {
				update.SyncInterval = &interval
			}
			if update.IsEmpty() {
				return errNothingToUpdate
			}

			syncService := c.app.SyncService()
			// loads the stored version so that saving keeps it
			if _, err := syncService.Initialize(cmd.Context()); err != nil {
				return err
			}

			res := syncService.SaveConfig(cmd.Context(), update)
			return c.printResult(cmd, res, res.Status, res.Message)
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", false, "enable sync")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "sync server base URL")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "shared secret key, at least 8 characters")
	cmd.Flags().BoolVar(&autoSync, "auto-sync", false, "sync periodically while the run command is active")
	cmd.Flags().DurationVar(&interval, "interval", 0, "auto-sync interval (e.g. 5m)")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.RFC3339)
}
