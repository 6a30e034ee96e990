package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"intake-service/internal/app/config"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/patients"
	"intake-service/internal/app/services/shared/printing"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-api-key-12345"

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.RegisterUser), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LoginUser), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockAuthUsecase) RefreshSession(ctx context.Context, session *models.Session) (*responses.LoginUser, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LoginUser), args.Error(1)
}

func (m *MockAuthUsecase) RequestPasswordReset(ctx context.Context, request *requests.ForgotPassword) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockAuthUsecase) ResetPassword(ctx context.Context, request *requests.ResetPassword) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

type recordingPrinter struct {
	printed []printing.Slip
}

func (p *recordingPrinter) Print(ctx context.Context, ownerID string, slip printing.Slip) (string, error) {
	p.printed = append(p.printed, slip)
	return "slips/" + ownerID + "/" + slip.RecordID + ".txt", nil
}

type noopEventSource struct{}

func (noopEventSource) Subscribe(userID string) (<-chan models.SessionEvent, func()) {
	events := make(chan models.SessionEvent)
	return events, func() { close(events) }
}

type testServer struct {
	router      *chi.Mux
	authUsecase *MockAuthUsecase
	printer     *recordingPrinter
}

func newTestServer() *testServer {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Env:            constvars.AppEnvDevelopment,
			Version:        "v1",
			EndpointPrefix: "/api",
		},
		Backend: config.BackendCredentials{APIKey: testAPIKey, StorageBucket: "slips-bucket"},
	}

	authUsecase := new(MockAuthUsecase)
	for _, user := range []string{"user-a", "user-b"} {
		authUsecase.On("Authenticate", mock.Anything, "token-"+user).Return(&models.Session{
			SessionID: "sess-" + user,
			UserID:    user,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
	}
	authUsecase.On("Authenticate", mock.Anything, mock.Anything).Return(nil, exceptions.ErrInvalidSession(nil))

	patientUsecase := patients.NewPatientUsecase(logger, patients.NewPatientMemoryRepository())
	printer := &recordingPrinter{}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, authUsecase, internalConfig),
		middlewares.NewRateLimiter(logger, 100, time.Second, time.Minute),
		controllers.NewAuthController(logger, authUsecase),
		controllers.NewSessionController(logger, noopEventSource{}),
		controllers.NewPatientController(logger, patientUsecase, printer, internalConfig.Backend.StorageBucket),
		controllers.NewHealthController(internalConfig),
	)

	return &testServer{router: router, authUsecase: authUsecase, printer: printer}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAPIKey, testAPIKey)
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func patientBody(name string) requests.CreatePatientRecord {
	return requests.CreatePatientRecord{
		Name:       name,
		FatherName: "Mohan",
		Address:    "12 MG Road",
		Mobile:     "9876543210",
		Complaint:  "fever",
	}
}

func TestRouter_RequiresAPIKeyAndSession(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/records", nil)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer token-user-a")
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "api key is required")

	rr = server.do(t, http.MethodGet, "/api/v1/patients/records", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "session is required")

	rr = server.do(t, http.MethodGet, "/api/v1/patients/records", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_HealthAndMetricsArePublic(t *testing.T) {
	server := newTestServer()

	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	server.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_PatientRecordLifecycle(t *testing.T) {
	server := newTestServer()

	rr := server.do(t, http.MethodPost, "/api/v1/patients/records", "token-user-a", patientBody("Ravi"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	first := decode[responses.CreatePatientRecord](t, rr).Data.ID
	require.NotEmpty(t, first)

	rr = server.do(t, http.MethodPost, "/api/v1/patients/records", "token-user-a", patientBody("Sita"))
	require.Equal(t, http.StatusCreated, rr.Code)
	second := decode[responses.CreatePatientRecord](t, rr).Data.ID

	t.Run("list is newest first", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/api/v1/patients/records", "token-user-a", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		records := decode[[]responses.PatientRecord](t, rr).Data
		require.Len(t, records, 2)
		assert.Equal(t, second, records[0].ID)
		assert.Equal(t, first, records[1].ID)
		assert.NotNil(t, records[0].CreatedAt)
	})

	t.Run("limit bounds the list", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/api/v1/patients/records?limit=1", "token-user-a", nil)
		records := decode[[]responses.PatientRecord](t, rr).Data
		require.Len(t, records, 1)
		assert.Equal(t, second, records[0].ID)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/api/v1/patients/records", "token-user-b", nil)
		assert.Empty(t, decode[[]responses.PatientRecord](t, rr).Data)

		rr = server.do(t, http.MethodGet, "/api/v1/patients/records/"+first, "token-user-b", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("slip is plain text", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/api/v1/patients/records/"+first+"/slip", "token-user-a", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Header().Get(constvars.HeaderContentType), constvars.MIMETextPlain))
		assert.Contains(t, rr.Body.String(), constvars.SlipTitle)
		assert.Contains(t, rr.Body.String(), "Ravi")
		assert.NotContains(t, rr.Body.String(), constvars.SlipProvisionalMarker)
	})

	t.Run("print archives the slip", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/api/v1/patients/records/"+first+"/print", "token-user-a", nil)
		require.Equal(t, http.StatusCreated, rr.Code)
		result := decode[responses.PrintPatientSlip](t, rr).Data
		assert.Equal(t, "slips-bucket", result.Bucket)
		assert.Equal(t, "slips/user-a/"+first+".txt", result.ObjectName)
		require.Len(t, server.printer.printed, 1)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		rr := server.do(t, http.MethodDelete, "/api/v1/patients/records/"+first, "token-user-a", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		rr = server.do(t, http.MethodDelete, "/api/v1/patients/records/"+first, "token-user-a", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = server.do(t, http.MethodGet, "/api/v1/patients/records/"+first, "token-user-a", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRouter_CreateRejectsIncompleteInput(t *testing.T) {
	server := newTestServer()

	body := patientBody("Ravi")
	body.Complaint = "   "
	rr := server.do(t, http.MethodPost, "/api/v1/patients/records", "token-user-a", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body = patientBody("Ravi")
	body.Mobile = "12345"
	rr = server.do(t, http.MethodPost, "/api/v1/patients/records", "token-user-a", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = server.do(t, http.MethodGet, "/api/v1/patients/records", "token-user-a", nil)
	assert.Empty(t, decode[[]responses.PatientRecord](t, rr).Data)
}

func TestRouter_LoginSurfacesErrorCode(t *testing.T) {
	server := newTestServer()
	server.authUsecase.On("Login", mock.Anything, &requests.LoginUser{Email: "ravi@example.com", Password: "nope"}).
		Return(nil, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeWrongPassword))

	rr := server.do(t, http.MethodPost, "/api/v1/auth/login", "", requests.LoginUser{Email: " ravi@example.com ", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var body responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, constvars.AuthCodeWrongPassword, body.Code)
}

func TestRouter_GetSession(t *testing.T) {
	server := newTestServer()

	rr := server.do(t, http.MethodGet, "/api/v1/auth/session", "token-user-b", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-b", decode[responses.Session](t, rr).Data.UserID)
}

func TestRouter_CreateStoresFieldsAsSubmitted(t *testing.T) {
	server := newTestServer()

	body := requests.CreatePatientRecord{
		Name:       "  Ravi Kumar ",
		FatherName: " Mohan Kumar",
		Address:    "12 MG Road  ",
		Mobile:     "9876543210",
		Complaint:  "\tfever\n",
	}
	rr := server.do(t, http.MethodPost, "/api/v1/patients/records", "token-user-a", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	id := decode[responses.CreatePatientRecord](t, rr).Data.ID

	rr = server.do(t, http.MethodGet, "/api/v1/patients/records/"+id, "token-user-a", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	record := decode[responses.PatientRecord](t, rr).Data

	assert.Equal(t, body.Name, record.Name)
	assert.Equal(t, body.FatherName, record.FatherName)
	assert.Equal(t, body.Address, record.Address)
	assert.Equal(t, body.Mobile, record.Mobile)
	assert.Equal(t, body.Complaint, record.Complaint)
}
