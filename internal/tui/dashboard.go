// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/planner-sync/models"
)

const (
	refreshInterval = time.Second
	noticeTTL       = 3 * time.Second
)

var errNoSecretKey = errors.New("no secret key configured")

type dashboardModel struct {
	ctx  context.Context
	sync SyncController
	info models.AppBuildInfo

	now             func() time.Time
	copyToClipboard func(string) error

	status        models.SyncStatus
	lastResult    *models.SyncResult
	notice        string
	noticeIsError bool
	noticeID      int
	syncing       syncModel
	showBuildInfo bool
}

func newDashboardModel(ctx context.Context, sync SyncController, info models.AppBuildInfo) dashboardModel {
	return dashboardModel{
		ctx:             ctx,
		sync:            sync,
		info:            info,
		now:             time.Now,
		copyToClipboard: clipboard.WriteAll,
		status:          sync.GetStatus(),
		syncing:         newSyncModel(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(refreshAfter(refreshInterval), m.syncing.spinner.Tick)
}

func refreshAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		m.status = m.sync.GetStatus()
		return m, refreshAfter(refreshInterval)

	case syncDoneMsg:
		m.syncing.running = false
		m.lastResult = &msg.result
		m.status = m.sync.GetStatus()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			return m.setNotice("Copy failed: "+msg.err.Error(), true)
		}
		return m.setNotice("Secret key copied to clipboard", false)

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.syncing.spinner, cmd = m.syncing.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case m.showBuildInfo:
		if key.Matches(msg, keys.esc) {
			m.showBuildInfo = false
		}
		return m, nil

	case key.Matches(msg, keys.info):
		m.showBuildInfo = true
		return m, nil

	case key.Matches(msg, keys.sync):
		if m.syncing.running {
			return m, nil
		}
		m.syncing.running = true
		return m, m.runSync()

	case key.Matches(msg, keys.copy):
		return m, m.copySecretKey()
	}

	return m, nil
}

func (m dashboardModel) runSync() tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		return syncDoneMsg{result: sync.Sync(ctx, true)}
	}
}

func (m dashboardModel) copySecretKey() tea.Cmd {
	ctx, sync, copyToClipboard := m.ctx, m.sync, m.copyToClipboard
	return func() tea.Msg {
		cfg, err := sync.GetConfig(ctx)
		if err != nil {
			return copiedMsg{err: err}
		}
		if cfg == nil || cfg.SecretKey == "" {
			return copiedMsg{err: errNoSecretKey}
		}
		return copiedMsg{err: copyToClipboard(cfg.SecretKey)}
	}
}

func (m dashboardModel) setNotice(text string, isError bool) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	m.noticeIsError = isError

	id := m.noticeID
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m dashboardModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.info)
	}

	st := m.status
	var b strings.Builder

	b.WriteString(field("Sync enabled", yesNo(st.Enabled)))
	b.WriteString(field("Auto-sync", yesNo(st.AutoSyncActive)))
	b.WriteString(field("Version", fmt.Sprintf("%d", st.Version)))
	b.WriteString(field("Last sync", formatLastSync(st.LastSync, m.now())))

	changes := "none"
	if st.HasLocalChange {
		changes = "pending"
	}
	b.WriteString(field("Local changes", changes))

	state := "idle"
	if m.syncing.running || st.Syncing {
		state = m.syncing.View()
	}
	b.WriteString(field("State", state))

	if m.lastResult != nil {
		style := successStyle
		if m.lastResult.Status == models.StatusError {
			style = errorStyle
		}
		b.WriteString("\n")
		b.WriteString(field("Last result", style.Render(m.lastResult.Message)))
	}

	if m.notice != "" {
		style := successStyle
		if m.noticeIsError {
			style = errorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.notice))
	}

	return renderPage("PLANNER SYNC", strings.TrimRight(b.String(), "\n"), helpLine(keys.sync, keys.copy, keys.info, keys.quit))
}
