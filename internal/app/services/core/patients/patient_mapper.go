package patients

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mapPatientDocument converts a stored document into a Patient. Documents
// written by older clients may lack fields or carry numbers where strings
// are expected, so every field is coerced and missing ones become empty.
func mapPatientDocument(recordID string, document map[string]interface{}) models.Patient {
	return models.Patient{
		ID:         recordID,
		Name:       coerceString(document[constvars.PatientFieldName]),
		FatherName: coerceString(document[constvars.PatientFieldFatherName]),
		Address:    coerceString(document[constvars.PatientFieldAddress]),
		Mobile:     coerceString(document[constvars.PatientFieldMobile]),
		Complaint:  coerceString(document[constvars.PatientFieldComplaint]),
		CreatedAt:  coerceTime(document[constvars.PatientFieldCreatedAt]),
	}
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case primitive.Null, primitive.Undefined:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func coerceTime(value interface{}) *time.Time {
	switch v := value.(type) {
	case primitive.DateTime:
		t := v.Time()
		return &t
	case time.Time:
		return &v
	case *time.Time:
		return v
	default:
		return nil
	}
}

func recordIDOf(value interface{}) string {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	default:
		return coerceString(v)
	}
}
