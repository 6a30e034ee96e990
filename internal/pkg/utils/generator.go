package utils

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateSessionID() string {
	return uuid.NewString()
}

func GenerateSlipObjectName(userID, recordID string) string {
	return fmt.Sprintf(constvars.SlipObjectNameFormat, userID, recordID)
}

// GenerateFileName builds a timestamped local file name for a saved slip.
func GenerateFileName(prefix, recordID, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s%s", prefix, recordID, timestamp, fileExtension)
}
