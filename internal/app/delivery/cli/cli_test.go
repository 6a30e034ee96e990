package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey   = "test-api-key"
	testToken    = "token-1"
	testEmail    = "doctor@example.com"
	testPassword = "correct-horse"
)

type fakeIntakeAPI struct {
	*httptest.Server
	sessionFile string

	mu          sync.Mutex
	records     []responses.PatientRecord
	nextID      int
	createCalls int
	deleteCalls int
	archived    []string
}

func newFakeIntakeAPI(t *testing.T) *fakeIntakeAPI {
	api := &fakeIntakeAPI{sessionFile: filepath.Join(t.TempDir(), "session.json")}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", api.login)
	mux.HandleFunc("GET /api/v1/auth/session", api.authed(api.session))
	mux.HandleFunc("POST /api/v1/auth/logout", api.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	}))
	mux.HandleFunc("POST /api/v1/auth/refresh", api.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, responses.LoginUser{
			SessionID: "sess-1",
			UserID:    "user-1",
			Email:     testEmail,
			Token:     testToken,
			ExpiresAt: time.Now().Add(2 * time.Hour),
		})
	}))
	mux.HandleFunc("GET /api/v1/patients/records", api.authed(api.list))
	mux.HandleFunc("POST /api/v1/patients/records", api.authed(api.create))
	mux.HandleFunc("GET /api/v1/patients/records/{id}", api.authed(api.get))
	mux.HandleFunc("DELETE /api/v1/patients/records/{id}", api.authed(api.remove))
	mux.HandleFunc("POST /api/v1/patients/records/{id}/print", api.authed(api.archive))

	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(constvars.HeaderAPIKey) != testAPIKey {
			writeError(w, exceptions.ErrInvalidAPIKey(nil))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(responses.ResponseDTO{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err *exceptions.CustomError) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(responses.ErrorResponse{
		StatusCode: err.StatusCode,
		Code:       err.Code,
		Message:    err.ClientMessage,
	})
}

func (api *fakeIntakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(constvars.HeaderAuthorization) != "Bearer "+testToken {
			writeError(w, exceptions.ErrTokenMissing(nil))
			return
		}
		next(w, r)
	}
}

func (api *fakeIntakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var request requests.LoginUser
	json.NewDecoder(r.Body).Decode(&request)
	switch {
	case request.Email != testEmail:
		writeError(w, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeUserNotFound))
	case request.Password != testPassword:
		writeError(w, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeWrongPassword))
	default:
		writeJSON(w, http.StatusOK, responses.LoginUser{
			SessionID: "sess-1",
			UserID:    "user-1",
			Email:     testEmail,
			Token:     testToken,
			ExpiresAt: time.Now().Add(time.Hour),
		})
	}
}

func (api *fakeIntakeAPI) session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, responses.Session{
		SessionID: "sess-1",
		UserID:    "user-1",
		Email:     testEmail,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func (api *fakeIntakeAPI) list(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]responses.PatientRecord{}, api.records...))
}

func (api *fakeIntakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var request requests.CreatePatientRecord
	json.NewDecoder(r.Body).Decode(&request)

	api.mu.Lock()
	defer api.mu.Unlock()
	api.createCalls++
	api.nextID++
	createdAt := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	record := responses.PatientRecord{
		ID:         fmt.Sprintf("rec-%d", api.nextID),
		Name:       request.Name,
		FatherName: request.FatherName,
		Address:    request.Address,
		Mobile:     request.Mobile,
		Complaint:  request.Complaint,
		CreatedAt:  &createdAt,
	}
	api.records = append([]responses.PatientRecord{record}, api.records...)
	writeJSON(w, http.StatusCreated, responses.CreatePatientRecord{ID: record.ID})
}

func (api *fakeIntakeAPI) find(id string) (responses.PatientRecord, int) {
	for i, record := range api.records {
		if record.ID == id {
			return record, i
		}
	}
	return responses.PatientRecord{}, -1
}

func (api *fakeIntakeAPI) get(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	record, index := api.find(r.PathValue("id"))
	if index < 0 {
		writeError(w, exceptions.ErrRecordNotFound(nil))
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *fakeIntakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.deleteCalls++
	if _, index := api.find(r.PathValue("id")); index >= 0 {
		api.records = append(api.records[:index], api.records[index+1:]...)
	}
	writeJSON(w, http.StatusOK, nil)
}

func (api *fakeIntakeAPI) archive(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	id := r.PathValue("id")
	api.archived = append(api.archived, id)
	writeJSON(w, http.StatusCreated, responses.PrintPatientSlip{
		Bucket:     "intake-slips",
		ObjectName: "slips/user-1/" + id + ".txt",
	})
}

func (api *fakeIntakeAPI) counts() (int, int) {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.createCalls, api.deleteCalls
}

func (api *fakeIntakeAPI) archivedIDs() []string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]string{}, api.archived...)
}

func (api *fakeIntakeAPI) run(stdin string, args ...string) (string, error) {
	out := &bytes.Buffer{}
	full := append([]string{
		"--base-url", api.URL + "/api/v1",
		"--api-key", testAPIKey,
		"--session-file", api.sessionFile,
	}, args...)
	err := Execute(context.Background(), strings.NewReader(stdin), out, full)
	return out.String(), err
}

func (api *fakeIntakeAPI) loggedIn(t *testing.T) {
	_, err := api.run("", "login", "--email", testEmail, "--password", testPassword)
	require.NoError(t, err)
}

func TestLoginOffersTheMatchingWayOut(t *testing.T) {
	api := newFakeIntakeAPI(t)

	t.Run("wrong password offers a reset", func(t *testing.T) {
		out, err := api.run("", "login", "--email", testEmail, "--password", "nope")
		require.Error(t, err)
		assert.True(t, IsReported(err))
		assert.Contains(t, out, constvars.ErrClientWrongPassword)
		assert.Contains(t, out, "intakectl forgot-password")
		assert.NotContains(t, out, "intakectl signup")
	})

	t.Run("unknown email offers an account", func(t *testing.T) {
		out, err := api.run("", "login", "--email", "new@example.com", "--password", "whatever")
		require.Error(t, err)
		assert.Contains(t, out, "intakectl signup --email new@example.com")
		assert.NotContains(t, out, "intakectl forgot-password")
	})

	t.Run("success shows the overview", func(t *testing.T) {
		out, err := api.run("", "login", "--email", testEmail, "--password", testPassword)
		require.NoError(t, err)
		assert.Contains(t, out, "Signed in as "+testEmail)
		assert.Contains(t, out, "Patients recorded: 0")
	})
}

func TestPromptedPasswordIsKeptAsTyped(t *testing.T) {
	api := newFakeIntakeAPI(t)

	_, err := api.run(testEmail+"\n "+testPassword+" \n", "login")
	require.Error(t, err, "surrounding spaces are part of the password")

	out, err := api.run(testEmail+"\n"+testPassword+"\r\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as "+testEmail)
}

func TestFailPointsAtLoginWhenSessionIsMissing(t *testing.T) {
	out := &bytes.Buffer{}
	app := NewApp(strings.NewReader(""), out)

	err := app.fail(exceptions.ErrAuthenticationRequired(nil))
	assert.True(t, IsReported(err))
	assert.Contains(t, out.String(), constvars.CLIHintSignInAgain)

	out.Reset()
	app.fail(exceptions.ErrRecordNotFound(nil))
	assert.NotContains(t, out.String(), constvars.CLIHintSignInAgain)
}

func TestProtectedCommandResumesAfterLogin(t *testing.T) {
	api := newFakeIntakeAPI(t)

	out, err := api.run(testEmail+"\n"+testPassword+"\n", "dashboard", "history")

	require.NoError(t, err)
	checking := strings.Index(out, constvars.CLIHintCheckingAccess)
	loginRequired := strings.Index(out, constvars.CLIHintLoginRequired)
	require.GreaterOrEqual(t, checking, 0)
	require.Greater(t, loginRequired, checking)
	assert.Contains(t, out, "No patient records yet.")
}

func TestUnknownCommandFallsBackToDashboard(t *testing.T) {
	api := newFakeIntakeAPI(t)
	api.loggedIn(t)

	out, err := api.run("", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf(constvars.CLIHintUnknownCommand, "settings"))
	assert.Contains(t, out, "Patients recorded: 0")
}

func TestRefreshAndLogout(t *testing.T) {
	api := newFakeIntakeAPI(t)
	api.loggedIn(t)

	out, err := api.run("", "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, constvars.RefreshSessionSuccessMessage)

	out, err = api.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, constvars.LogoutSuccessMessage)

	_, err = os.Stat(api.sessionFile)
	assert.True(t, os.IsNotExist(err), "logout removes the stored session")
}

func TestNewPatient(t *testing.T) {
	api := newFakeIntakeAPI(t)
	api.loggedIn(t)

	t.Run("invalid form never reaches the server", func(t *testing.T) {
		_, err := api.run("", "new-patient",
			"--name", "Asha Rao", "--father-name", "Vikram Rao", "--address", "Pune",
			"--mobile", "12345", "--complaint", "Fever")

		require.Error(t, err)
		creates, _ := api.counts()
		assert.Equal(t, 0, creates)
	})

	t.Run("save and preview prints the stored slip", func(t *testing.T) {
		out, err := api.run("", "new-patient",
			"--name", "Asha Rao", "--father-name", "Vikram Rao", "--address", "Pune",
			"--mobile", "9876543210", "--complaint", "Fever", "--preview")

		require.NoError(t, err)
		creates, _ := api.counts()
		assert.Equal(t, 1, creates)
		assert.Contains(t, out, constvars.SlipTitle)
		assert.Contains(t, out, "Asha Rao")
		assert.NotContains(t, out, constvars.SlipProvisionalMarker)
	})

	t.Run("missing fields are prompted for", func(t *testing.T) {
		out, err := api.run("Ravi Kumar\nSuresh Kumar\nNashik\n9123456780\nCough\n", "dashboard", "new")

		require.NoError(t, err)
		assert.Contains(t, out, "Record id: rec-2")
	})
}

func TestHistoryDelete(t *testing.T) {
	api := newFakeIntakeAPI(t)
	api.loggedIn(t)
	_, err := api.run("", "new-patient",
		"--name", "Asha Rao", "--father-name", "Vikram Rao", "--address", "Pune",
		"--mobile", "9876543210", "--complaint", "Fever")
	require.NoError(t, err)

	out, err := api.run("n\n", "dashboard", "history", "delete", "rec-1")
	require.NoError(t, err)
	assert.Contains(t, out, constvars.PromptDeleteRecord)
	assert.Contains(t, out, "Nothing deleted.")
	_, deletes := api.counts()
	assert.Equal(t, 0, deletes)

	out, err = api.run("", "dashboard", "history", "delete", "rec-1", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, constvars.DeletePatientRecordSuccessMessage)
	_, deletes = api.counts()
	assert.Equal(t, 1, deletes)

	out, err = api.run("", "dashboard", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No patient records yet.")
}

func TestPreview(t *testing.T) {
	api := newFakeIntakeAPI(t)
	api.loggedIn(t)
	_, err := api.run("", "new-patient",
		"--name", "Asha Rao", "--father-name", "Vikram Rao", "--address", "Pune",
		"--mobile", "9876543210", "--complaint", "Fever")
	require.NoError(t, err)

	t.Run("unknown record", func(t *testing.T) {
		out, err := api.run("", "preview", "missing")
		require.Error(t, err)
		assert.Contains(t, out, constvars.ErrClientPatientRecordNotFound)
	})

	t.Run("archive", func(t *testing.T) {
		out, err := api.run("", "preview", "rec-1", "--archive")
		require.NoError(t, err)
		assert.Contains(t, out, "Asha Rao")
		assert.Contains(t, out, "Slip saved to intake-slips/slips/user-1/rec-1.txt")
		assert.Equal(t, []string{"rec-1"}, api.archivedIDs())
	})

	t.Run("save to file", func(t *testing.T) {
		dir := t.TempDir()

		out, err := api.run("", "preview", "rec-1", "--print", "--save", dir)

		require.NoError(t, err)
		files, err := filepath.Glob(filepath.Join(dir, "slip_rec-1_*.txt"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Contains(t, out, "Slip saved to "+files[0])
		content, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.Contains(t, string(content), "Asha Rao")
	})
}

func TestLoadClientConfig(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("INTAKECTL_API_KEY", `"env-key"`)
		t.Setenv("INTAKECTL_BASE_URL", "http://intake.test/api/v1/")

		cfg, err := loadClientConfig(newViper(), "")

		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.APIKey)
		assert.Equal(t, "http://intake.test/api/v1", cfg.BaseURL)
		assert.NotEmpty(t, cfg.SessionFile)
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("INTAKECTL_API_KEY", "")

		_, err := loadClientConfig(newViper(), "")

		assert.ErrorContains(t, err, "api_key is required")
	})
}

func TestVersionNeedsNoConfiguration(t *testing.T) {
	t.Setenv("INTAKECTL_API_KEY", "")
	out := &bytes.Buffer{}

	err := Execute(context.Background(), strings.NewReader(""), out, []string{"version"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Version: "+Version)
}
