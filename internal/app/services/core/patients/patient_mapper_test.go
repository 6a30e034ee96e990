package patients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMapPatientDocument(t *testing.T) {
	t.Run("maps a complete document", func(t *testing.T) {
		createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		document := bson.M{
			"name":       "Ravi",
			"fatherName": "Mohan",
			"address":    "12 MG Road",
			"mobile":     "9876543210",
			"complaint":  "fever",
			"createdAt":  primitive.NewDateTimeFromTime(createdAt),
		}

		patient := mapPatientDocument("rec-1", document)

		assert.Equal(t, "rec-1", patient.ID)
		assert.Equal(t, "Ravi", patient.Name)
		assert.Equal(t, "Mohan", patient.FatherName)
		assert.Equal(t, "12 MG Road", patient.Address)
		assert.Equal(t, "9876543210", patient.Mobile)
		assert.Equal(t, "fever", patient.Complaint)
		require.NotNil(t, patient.CreatedAt)
		assert.True(t, createdAt.Equal(*patient.CreatedAt))
	})

	t.Run("missing fields become empty strings", func(t *testing.T) {
		patient := mapPatientDocument("rec-2", bson.M{"name": "Ravi"})

		assert.Equal(t, "Ravi", patient.Name)
		assert.Empty(t, patient.FatherName)
		assert.Empty(t, patient.Address)
		assert.Empty(t, patient.Mobile)
		assert.Empty(t, patient.Complaint)
		assert.Nil(t, patient.CreatedAt)
	})

	t.Run("numbers are formatted as strings", func(t *testing.T) {
		patient := mapPatientDocument("rec-3", bson.M{
			"mobile":  int64(9876543210),
			"address": int32(42),
			"name":    nil,
		})

		assert.Equal(t, "9876543210", patient.Mobile)
		assert.Equal(t, "42", patient.Address)
		assert.Empty(t, patient.Name)
	})

	t.Run("non-date createdAt maps to nil", func(t *testing.T) {
		patient := mapPatientDocument("rec-4", bson.M{"createdAt": "yesterday"})
		assert.Nil(t, patient.CreatedAt)
	})
}
