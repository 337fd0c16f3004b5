package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

// SyncController is the part of the client sync service the dashboard
// drives.
type SyncController interface {
	Sync(ctx context.Context, manual bool) models.SyncResult
	GetStatus() models.SyncStatus
	GetConfig(ctx context.Context) (*models.SyncConfig, error)
}

type TUI struct {
	sync   SyncController
	info   models.AppBuildInfo
	logger *logger.Logger
}

func New(sync SyncController, info models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{sync: sync, info: info, logger: logger}
}

// Dashboard shows the live sync status until the user quits or ctx is done.
func (t *TUI) Dashboard(ctx context.Context) error {
	model := newDashboardModel(ctx, t.sync, t.info)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		t.logger.Err(err).Str("func", "*TUI.Dashboard").Msg("dashboard stopped with error")
		return fmt.Errorf("run dashboard: %w", err)
	}

	return nil
}
