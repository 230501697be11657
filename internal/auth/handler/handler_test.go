package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orghub_backend/internal/auth/repository"
	"orghub_backend/internal/auth/service"
	authvalidator "orghub_backend/internal/auth/validator"
	"orghub_backend/internal/events"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"
)

type memStore struct {
	users map[string]repository.User
}

func (s *memStore) CreateUserWithDefaultOrganisation(_ context.Context, params repository.RegisterParams) (repository.User, uuid.UUID, error) {
	if _, exists := s.users[params.Email]; exists {
		return repository.User{}, uuid.Nil, repository.ErrEmailTaken
	}
	user := repository.User{
		ID:           uuid.New(),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Phone:        params.Phone,
		PasswordHash: params.PasswordHash,
	}
	s.users[params.Email] = user
	return user, uuid.New(), nil
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := s.users[email]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}

type staticIssuer struct{}

func (staticIssuer) Issue(userID uuid.UUID) (string, error) {
	return "tok-" + userID.String(), nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event) {}
func (nopBus) PublishSync(context.Context, events.Event) error {
	return nil
}
func (nopBus) Subscribe(string, events.Handler) {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	val := validator.New()
	if err := authvalidator.Register(val); err != nil {
		t.Fatalf("registering phone validation: %v", err)
	}

	store := &memStore{users: make(map[string]repository.User)}
	svc := service.New(store, staticIssuer{}, nopBus{}, logger.New("test"))

	router := gin.New()
	New(svc, val).RegisterRoutes(router.Group("/auth"))
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const registerBody = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"s3cret"}`

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/auth/register", registerBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AccessToken string `json:"accessToken"`
			User        struct {
				UserID string `json:"userId"`
				Email  string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "success" || resp.Message != "Registration successful" {
		t.Errorf("envelope = %q/%q", resp.Status, resp.Message)
	}
	if resp.Data.AccessToken == "" {
		t.Error("missing access token")
	}
	if resp.Data.User.Email != "ada@example.com" {
		t.Errorf("user email = %q", resp.Data.User.Email)
	}
	if resp.Data.User.UserID == "" {
		t.Error("missing userId")
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"not-an-email","password":"s3cret"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %+v, want exactly one", resp.Errors)
	}
	if resp.Errors[0].Field != "email" || resp.Errors[0].Message != "Enter a valid email address." {
		t.Errorf("unexpected field error %+v", resp.Errors[0])
	}
}

func TestRegisterMissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/auth/register", `{"email":"ada@example.com"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	missing := map[string]bool{}
	for _, fe := range resp.Errors {
		if fe.Message != "This field is required." {
			t.Errorf("message for %q = %q", fe.Field, fe.Message)
		}
		missing[fe.Field] = true
	}
	for _, field := range []string{"firstName", "lastName", "password"} {
		if !missing[field] {
			t.Errorf("no error reported for %q", field)
		}
	}
}

func TestRegisterBadPhone(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"s3cret","phone":"12-34"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Phone number must be entered in the format") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(router, http.MethodPost, "/auth/register", registerBody); rec.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d", rec.Code)
	}

	rec := doJSON(router, http.MethodPost, "/auth/register", registerBody)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "This email is already registered.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRegisterMalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/auth/register", `{"firstName":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Client error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(router, http.MethodPost, "/auth/register", registerBody); rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", rec.Code)
	}

	rec := doJSON(router, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Login successful") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(router, http.MethodPost, "/auth/register", registerBody); rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", rec.Code)
	}

	cases := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"ada@example.com","password":"nope"}`},
		{"unknown email", `{"email":"nobody@example.com","password":"s3cret"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPost, "/auth/login", tc.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}

			var resp struct {
				Status     string `json:"status"`
				Message    string `json:"message"`
				StatusCode int    `json:"statusCode"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Status != "Bad request" || resp.Message != "Authentication failed" || resp.StatusCode != 401 {
				t.Errorf("unexpected body %+v", resp)
			}
		})
	}
}
