package config

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/utils"
	"strings"
)

const (
	EnvBackendAPIKey            = "INTAKE_API_KEY"
	EnvBackendAuthDomain        = "INTAKE_AUTH_DOMAIN"
	EnvBackendProjectID         = "INTAKE_PROJECT_ID"
	EnvBackendStorageBucket     = "INTAKE_STORAGE_BUCKET"
	EnvBackendMessagingSenderID = "INTAKE_MESSAGING_SENDER_ID"
	EnvBackendAppID             = "INTAKE_APP_ID"
)

// Values shipped in the sample .env file. A deployment still carrying any of
// them has not been configured.
var backendPlaceholders = map[string]bool{
	"":                             true,
	"your_api_key":                 true,
	"your_project.firebaseapp.com": true,
	"your_project_id":              true,
	"your_project.appspot.com":     true,
	"your_messaging_sender_id":     true,
	"your_app_id":                  true,
}

func NewBackendCredentials() BackendCredentials {
	return BackendCredentials{
		APIKey:            utils.GetEnvString(EnvBackendAPIKey, ""),
		AuthDomain:        utils.GetEnvString(EnvBackendAuthDomain, ""),
		ProjectID:         utils.GetEnvString(EnvBackendProjectID, ""),
		StorageBucket:     utils.GetEnvString(EnvBackendStorageBucket, ""),
		MessagingSenderID: utils.GetEnvString(EnvBackendMessagingSenderID, ""),
		AppID:             utils.GetEnvString(EnvBackendAppID, ""),
	}
}

// Validate fails on the first credential that is missing or still a
// placeholder, naming its environment key.
func (c BackendCredentials) Validate() error {
	fields := []struct {
		key   string
		value string
	}{
		{EnvBackendAPIKey, c.APIKey},
		{EnvBackendAuthDomain, c.AuthDomain},
		{EnvBackendProjectID, c.ProjectID},
		{EnvBackendStorageBucket, c.StorageBucket},
		{EnvBackendMessagingSenderID, c.MessagingSenderID},
		{EnvBackendAppID, c.AppID},
	}

	for _, field := range fields {
		if backendPlaceholders[strings.TrimSpace(field.value)] {
			return fmt.Errorf(constvars.ErrEnvMissingOrDefault, field.key)
		}
	}
	return nil
}

// SenderAddress is the From address of transactional mail.
func (c BackendCredentials) SenderAddress(domain string) string {
	return fmt.Sprintf("noreply+%s@%s", c.MessagingSenderID, domain)
}
