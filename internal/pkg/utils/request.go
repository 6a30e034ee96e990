package utils

import (
	"intake-service/internal/pkg/constvars"
	"net/http"
	"strconv"
	"strings"
)

// ParseLimitQuery reads the optional record count limit. Zero means no
// limit was supplied or the value could not be used.
func ParseLimitQuery(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamLimit))
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}

func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if !strings.HasPrefix(header, constvars.AuthorizationBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constvars.AuthorizationBearerPrefix))
}
