package screens

import (
	"intake-service/internal/app/models"
	"sync"
)

// Workspace is the record list and history counter shared by the dashboard
// sections. The counter is adjusted optimistically on create and delete and
// re-derived from the list length on every full fetch. Local mutations bump
// the revision so a fetch that started earlier cannot overwrite them.
type Workspace struct {
	mu       sync.RWMutex
	records  []models.Patient
	count    int
	revision uint64
}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

func (w *Workspace) Records() []models.Patient {
	w.mu.RLock()
	defer w.mu.RUnlock()
	records := make([]models.Patient, len(w.records))
	copy(records, w.records)
	return records
}

func (w *Workspace) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.count
}

func (w *Workspace) currentRevision() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.revision
}

func (w *Workspace) replace(records []models.Patient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append([]models.Patient(nil), records...)
	w.count = len(w.records)
}

// replaceAt installs a fetched list only if nothing changed locally since
// revision was read.
func (w *Workspace) replaceAt(revision uint64, records []models.Patient) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.revision != revision {
		return false
	}
	w.records = append([]models.Patient(nil), records...)
	w.count = len(w.records)
	return true
}

func (w *Workspace) prepend(record models.Patient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append([]models.Patient{record}, w.records...)
	w.count++
	w.revision++
}

// refresh swaps in the authoritative copy of a record already in the list.
func (w *Workspace) refresh(record models.Patient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.records {
		if w.records[i].ID == record.ID {
			w.records[i] = record
			return
		}
	}
}

// remove drops the record and reports whether it was listed. The counter
// only moves when it was.
func (w *Workspace) remove(recordID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.records {
		if w.records[i].ID == recordID {
			w.records = append(w.records[:i:i], w.records[i+1:]...)
			w.count--
			w.revision++
			return true
		}
	}
	return false
}
