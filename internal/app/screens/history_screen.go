package screens

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// maxListAttempts bounds how often Mount refetches when local creates or
// deletes land while a list request is in flight.
const maxListAttempts = 3

type HistoryState struct {
	Status   Status
	Records  []models.Patient
	Count    int
	Error    string
	Deleting map[string]bool
}

// HistoryScreen lists the user's records and deletes them on confirmation.
type HistoryScreen struct {
	*screen
	Log       *zap.Logger
	records   contracts.PatientRecordService
	workspace *Workspace
	confirmer Confirmer
	userID    string
	deleting  map[string]bool
}

func NewHistoryScreen(ctx context.Context, logger *zap.Logger, records contracts.PatientRecordService, workspace *Workspace, confirmer Confirmer, userID string) *HistoryScreen {
	return &HistoryScreen{
		screen:    newScreen(ctx),
		Log:       logger,
		records:   records,
		workspace: workspace,
		confirmer: confirmer,
		userID:    userID,
		deleting:  make(map[string]bool),
	}
}

func (h *HistoryScreen) State() HistoryState {
	h.mu.Lock()
	defer h.mu.Unlock()

	deleting := make(map[string]bool, len(h.deleting))
	for id := range h.deleting {
		deleting[id] = true
	}
	return HistoryState{
		Status:   h.status,
		Records:  h.workspace.Records(),
		Count:    h.workspace.Count(),
		Error:    h.err,
		Deleting: deleting,
	}
}

// Mount loads the full list. Without a user the list is simply empty.
func (h *HistoryScreen) Mount() {
	if h.userID == "" {
		h.update(func() {
			h.workspace.replace(nil)
			h.status = StatusReady
			h.err = ""
		})
		return
	}

	if !h.update(func() { h.status = StatusLoading }) {
		return
	}

	outcome, message := StatusError, constvars.ErrClientSomethingWrongWithApplication
	defer func() {
		h.update(func() {
			h.status = outcome
			h.err = message
		})
	}()

	for attempt := 1; attempt <= maxListAttempts; attempt++ {
		revision := h.workspace.currentRevision()
		records, err := h.records.ListRecords(h.ctx, h.userID)
		if err != nil {
			h.Log.Debug("HistoryScreen.Mount failed", zap.Error(err))
			message = exceptions.Message(err)
			return
		}

		applied := false
		if !h.update(func() { applied = h.workspace.replaceAt(revision, records) }) {
			return
		}
		if applied {
			break
		}
		h.Log.Debug("HistoryScreen.Mount discarded a list older than a local change",
			zap.Int("attempt", attempt),
		)
	}
	outcome, message = StatusReady, ""
}

func (h *HistoryScreen) Refresh() {
	h.Mount()
}

// Delete removes a record after the operator confirms. A declined
// confirmation leaves everything untouched. Deletes of different records
// may run at the same time.
func (h *HistoryScreen) Delete(recordID string) bool {
	if !h.confirmer.Confirm(constvars.PromptDeleteRecord) {
		return false
	}
	if h.userID == "" {
		h.update(func() { h.err = exceptions.Message(exceptions.ErrAuthenticationRequired(nil)) })
		return false
	}

	started := false
	h.update(func() {
		if h.deleting[recordID] {
			return
		}
		h.deleting[recordID] = true
		started = true
	})
	if !started {
		return false
	}
	defer h.update(func() { delete(h.deleting, recordID) })

	err := h.records.DeleteRecord(h.ctx, h.userID, recordID)
	if err != nil {
		h.Log.Debug("HistoryScreen.Delete failed",
			zap.String(constvars.LoggingRecordIDKey, recordID),
			zap.Error(err),
		)
		h.update(func() { h.err = exceptions.Message(err) })
		return false
	}

	return h.update(func() {
		h.workspace.remove(recordID)
		h.err = ""
	})
}
