package tui

import (
	"time"

	"github.com/MKhiriev/planner-sync/models"
)

// refreshMsg re-reads the sync status.
type refreshMsg time.Time

type syncDoneMsg struct {
	result models.SyncResult
}

type copiedMsg struct {
	err error
}

type clearNoticeMsg struct {
	id int
}
