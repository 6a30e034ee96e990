package patients

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const memoryFieldSequence = "_seq"

// PatientMemoryRepository keeps records in process memory. It backs local
// development runs and tests.
type PatientMemoryRepository struct {
	cache *cache.Cache
	now   func() time.Time

	mu       sync.Mutex
	sequence int64
}

func NewPatientMemoryRepository() *PatientMemoryRepository {
	return &PatientMemoryRepository{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

var _ contracts.PatientRepository = (*PatientMemoryRepository)(nil)

func memoryKey(ownerID, recordID string) string {
	return ownerID + "/" + recordID
}

func (r *PatientMemoryRepository) FindAllByOwner(ctx context.Context, ownerID string, limit int) ([]models.Patient, error) {
	if err := ctx.Err(); err != nil {
		metrics.ObserveStoreOperation("list", err)
		return nil, err
	}

	type entry struct {
		recordID string
		document map[string]interface{}
	}

	prefix := memoryKey(ownerID, "")
	entries := make([]entry, 0)
	for key, item := range r.cache.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		document := item.Object.(map[string]interface{})
		if document[constvars.PatientFieldOwnerID] != ownerID {
			continue
		}
		entries = append(entries, entry{
			recordID: strings.TrimPrefix(key, prefix),
			document: document,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		left := entries[i].document[constvars.PatientFieldCreatedAt].(time.Time)
		right := entries[j].document[constvars.PatientFieldCreatedAt].(time.Time)
		if !left.Equal(right) {
			return left.After(right)
		}
		return entries[i].document[memoryFieldSequence].(int64) > entries[j].document[memoryFieldSequence].(int64)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	patients := make([]models.Patient, 0, len(entries))
	for _, e := range entries {
		patients = append(patients, mapPatientDocument(e.recordID, e.document))
	}
	metrics.ObserveStoreOperation("list", nil)
	return patients, nil
}

func (r *PatientMemoryRepository) FindByID(ctx context.Context, ownerID, recordID string) (*models.Patient, error) {
	if err := ctx.Err(); err != nil {
		metrics.ObserveStoreOperation("get", err)
		return nil, err
	}
	metrics.ObserveStoreOperation("get", nil)

	if recordID == "" {
		return nil, nil
	}
	item, found := r.cache.Get(memoryKey(ownerID, recordID))
	if !found {
		return nil, nil
	}
	document := item.(map[string]interface{})
	if document[constvars.PatientFieldOwnerID] != ownerID {
		return nil, nil
	}
	patient := mapPatientDocument(recordID, document)
	return &patient, nil
}

func (r *PatientMemoryRepository) Create(ctx context.Context, ownerID string, input models.PatientInput) (string, error) {
	if err := ctx.Err(); err != nil {
		metrics.ObserveStoreOperation("create", err)
		return "", err
	}

	r.mu.Lock()
	r.sequence++
	sequence := r.sequence
	r.mu.Unlock()

	recordID := primitive.NewObjectID().Hex()
	r.cache.Set(memoryKey(ownerID, recordID), map[string]interface{}{
		constvars.PatientFieldOwnerID:    ownerID,
		constvars.PatientFieldName:       input.Name,
		constvars.PatientFieldFatherName: input.FatherName,
		constvars.PatientFieldAddress:    input.Address,
		constvars.PatientFieldMobile:     input.Mobile,
		constvars.PatientFieldComplaint:  input.Complaint,
		constvars.PatientFieldCreatedAt:  r.now(),
		memoryFieldSequence:              sequence,
	}, cache.NoExpiration)

	metrics.ObserveStoreOperation("create", nil)
	return recordID, nil
}

func (r *PatientMemoryRepository) Delete(ctx context.Context, ownerID, recordID string) error {
	if err := ctx.Err(); err != nil {
		metrics.ObserveStoreOperation("delete", err)
		return err
	}
	key := memoryKey(ownerID, recordID)
	if item, found := r.cache.Get(key); found && item.(map[string]interface{})[constvars.PatientFieldOwnerID] == ownerID {
		r.cache.Delete(key)
	}
	metrics.ObserveStoreOperation("delete", nil)
	return nil
}
