package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/alumbridge/scholarship-service/internal/auth"
	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/kvstore"
	redisrepo "github.com/alumbridge/scholarship-service/internal/repositories/redis"
	"github.com/alumbridge/scholarship-service/internal/reports"
	"github.com/alumbridge/scholarship-service/internal/services"
	"github.com/alumbridge/scholarship-service/internal/utils"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogLogger)

	store := kvstore.NewRedisStore(client)
	repo := redisrepo.NewRepositoryManager(store)
	gateway := auth.NewJWTGateway(store, auth.JWTGatewayConfig{
		Secret: []byte("test-secret"),
		Issuer: "scholarship-service-test",
		Expiry: time.Hour,
	}, slogLogger)

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Gateway:   gateway,
		Locker:    redislock.New(client),
		Publisher: events.NewMockEventPublisher(slogLogger),
		Logger:    slogLogger,
		Validator: validator.New(),
	})

	exporter := reports.NewLedgerExporter(repo)
	authMiddleware := NewAuthMiddleware(gateway, nil, repo.Profile())
	handlerManager := NewHandlerManager(serviceManager, exporter, logger, authMiddleware)

	router := gin.New()
	SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func signupStudent(t *testing.T, router *gin.Engine, rollNumber string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"role":       "student",
		"name":       "Test Student",
		"department": "Computer Science",
		"password":   "password123",
		"rollNumber": rollNumber,
		"year":       "3",
		"semester":   "6",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("student signup returned %d: %s", w.Code, w.Body.String())
	}
	id, _ := decodeBody(t, w)["userId"].(string)
	if id == "" {
		t.Fatal("student signup returned no userId")
	}
	return id
}

func signupAlumni(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"role":          "alumni",
		"name":          "Test Alumni",
		"department":    "Computer Science",
		"password":      "password123",
		"email":         email,
		"passedOutYear": "2015",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("alumni signup returned %d: %s", w.Code, w.Body.String())
	}
	id, _ := decodeBody(t, w)["userId"].(string)
	if id == "" {
		t.Fatal("alumni signup returned no userId")
	}
	return id
}

func login(t *testing.T, router *gin.Engine, role, identifier string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"role":       role,
		"identifier": identifier,
		"password":   "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["accessToken"].(string)
	if token == "" {
		t.Fatal("login returned no accessToken")
	}
	return token
}

func TestRouter_Health(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}
	if status := decodeBody(t, w)["status"]; status != "healthy" {
		t.Errorf("status = %v, want healthy", status)
	}
}

func TestRouter_SignupLoginProfile(t *testing.T) {
	router := setupTestRouter(t)

	id := signupStudent(t, router, "CS2021001")
	token := login(t, router, "student", "CS2021001")

	w := doJSON(t, router, http.MethodGet, "/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile returned %d: %s", w.Code, w.Body.String())
	}
	user, _ := decodeBody(t, w)["user"].(map[string]any)
	if user == nil || user["id"] != id {
		t.Errorf("profile user = %v, want id %q", user, id)
	}
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/profile", "/scholarships", "/stats", "/contributions"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token returned %d, want 401", path, w.Code)
		}
	}
}

func TestRouter_RejectsBadLogin(t *testing.T) {
	router := setupTestRouter(t)
	signupStudent(t, router, "CS2021001")

	w := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"role":       "student",
		"identifier": "CS2021001",
		"password":   "not-the-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login returned %d, want 401", w.Code)
	}
}

func TestRouter_ScholarshipFlow(t *testing.T) {
	router := setupTestRouter(t)

	studentID := signupStudent(t, router, "CS2021001")
	studentToken := login(t, router, "student", "CS2021001")
	signupAlumni(t, router, "grad@example.com")
	alumniToken := login(t, router, "alumni", "grad@example.com")

	w := doJSON(t, router, http.MethodPost, "/scholarship", studentToken, gin.H{
		"amountRequired": 10000,
		"totalCGPA":      8.4,
		"semesterGPA":    []gin.H{{"semester": 1, "gpa": 8.1}},
		"reason":         "Family income dropped this year",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit returned %d: %s", w.Code, w.Body.String())
	}

	// Alumni may not submit scholarship requests.
	w = doJSON(t, router, http.MethodPost, "/scholarship", alumniToken, gin.H{
		"amountRequired": 5000,
		"totalCGPA":      7.0,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("alumni submit returned %d, want 403", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/scholarships", alumniToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d: %s", w.Code, w.Body.String())
	}
	scholarships, _ := decodeBody(t, w)["scholarships"].([]any)
	if len(scholarships) != 1 {
		t.Fatalf("expected 1 scholarship, got %d", len(scholarships))
	}

	w = doJSON(t, router, http.MethodPost, "/contribute", alumniToken, gin.H{
		"studentId": studentID,
		"amount":    4000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("contribute returned %d: %s", w.Code, w.Body.String())
	}

	// Students may not contribute.
	w = doJSON(t, router, http.MethodPost, "/contribute", studentToken, gin.H{
		"studentId": studentID,
		"amount":    1000,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("student contribute returned %d, want 403", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/scholarship/"+studentID, alumniToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get scholarship returned %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	scholarship, _ := body["scholarship"].(map[string]any)
	if scholarship == nil || scholarship["totalReceived"] != float64(4000) {
		t.Errorf("totalReceived = %v, want 4000", scholarship["totalReceived"])
	}
	if body["student"] == nil {
		t.Error("expected student profile in response")
	}

	w = doJSON(t, router, http.MethodGet, "/contributions", alumniToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("contributions returned %d: %s", w.Code, w.Body.String())
	}
	contributions, _ := decodeBody(t, w)["contributions"].([]any)
	if len(contributions) != 1 {
		t.Errorf("expected 1 contribution, got %d", len(contributions))
	}

	w = doJSON(t, router, http.MethodGet, "/stats", alumniToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats returned %d: %s", w.Code, w.Body.String())
	}
	stats := decodeBody(t, w)
	if stats["totalContributions"] != float64(4000) {
		t.Errorf("totalContributions = %v, want 4000", stats["totalContributions"])
	}
}

func TestRouter_ContributeToMissingScholarship(t *testing.T) {
	router := setupTestRouter(t)

	signupAlumni(t, router, "grad@example.com")
	token := login(t, router, "alumni", "grad@example.com")

	w := doJSON(t, router, http.MethodPost, "/contribute", token, gin.H{
		"studentId": "no-such-student",
		"amount":    1000,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("contribute returned %d, want 404", w.Code)
	}
}

func TestRouter_GetMissingScholarship(t *testing.T) {
	router := setupTestRouter(t)

	signupAlumni(t, router, "grad@example.com")
	token := login(t, router, "alumni", "grad@example.com")

	w := doJSON(t, router, http.MethodGet, "/scholarship/no-such-student", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get scholarship returned %d, want 404", w.Code)
	}
}

func TestRouter_DuplicateSignup(t *testing.T) {
	router := setupTestRouter(t)

	signupStudent(t, router, "CS2021001")
	w := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"role":       "student",
		"name":       "Second Student",
		"department": "Computer Science",
		"password":   "password456",
		"rollNumber": "CS2021001",
		"year":       "2",
		"semester":   "4",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate signup returned %d, want 400", w.Code)
	}
	if decodeBody(t, w)["error"] != "duplicate_identity" {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestRouter_ExportLedger(t *testing.T) {
	router := setupTestRouter(t)

	studentID := signupStudent(t, router, "CS2021001")
	studentToken := login(t, router, "student", "CS2021001")
	signupAlumni(t, router, "grad@example.com")
	alumniToken := login(t, router, "alumni", "grad@example.com")

	w := doJSON(t, router, http.MethodPost, "/scholarship", studentToken, gin.H{
		"amountRequired": 10000,
		"totalCGPA":      8.4,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit returned %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPost, "/contribute", alumniToken, gin.H{
		"studentId": studentID,
		"amount":    2000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("contribute returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/contributions/export", alumniToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export returned %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("export body is empty")
	}
}
