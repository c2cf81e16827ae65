package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"postboard/database"
	"postboard/web/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")
	database.InitSQLiteDB(dbPath)
}

func teardown() {
	database.CloseDB()
	os.Remove("test.db")
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	g := engine.Group("/")
	NewRootController(g)
	NewUserController(g)
	NewAuthController(g)
	NewPostController(g)
	NewVoteController(g)
	NewStatusController(g)

	return engine
}

func doRequest(router *gin.Engine, method string, path string, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
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
	body := map[string]any{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, router *gin.Engine, email string, password string) int {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/users/", "", gin.H{"email": email, "password": password})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	return int(body["id"].(float64))
}

func loginUser(t *testing.T, router *gin.Engine, email string, password string) string {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/login", "", gin.H{"email": email, "password": password})
	assert.Equal(t, http.StatusOK, w.Code)
	token := entity.Token{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	return token.AccessToken
}

func TestRootEndpoint(t *testing.T) {
	setup()
	defer teardown()
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Hello World"}`, w.Body.String())
}

func TestUserEndpoints(t *testing.T) {
	setup()
	defer teardown()
	router := newTestRouter()

	// Test registration
	w := doRequest(router, http.MethodPost, "/users/", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Greater(t, body["id"].(float64), float64(0))
	assert.NotContains(t, body, "password")

	id := int(body["id"].(float64))

	// Duplicate email conflicts
	w = doRequest(router, http.MethodPost, "/users/", "", gin.H{
		"email":    "alice@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail": "user with email alice@example.com already exists"}`, w.Body.String())

	// Invalid payloads are unprocessable
	w = doRequest(router, http.MethodPost, "/users/", "", gin.H{
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(router, http.MethodPost, "/users/", "", gin.H{"email": "bob@example.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Test user lookup
	w = doRequest(router, http.MethodGet, "/users/"+strconv.Itoa(id), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "alice@example.com", body["email"])

	w = doRequest(router, http.MethodGet, "/users/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "user with id 9999 does not exist"}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/users/abc", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail": "id must be an integer"}`, w.Body.String())
}

func TestLoginEndpoint(t *testing.T) {
	setup()
	defer teardown()
	router := newTestRouter()

	registerUser(t, router, "alice@example.com", "secret123")

	// Test successful login
	w := doRequest(router, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := entity.Token{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	// Wrong password and unknown email read the same from outside
	w = doRequest(router, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "invalid credentials"}`, w.Body.String())

	w = doRequest(router, http.MethodPost, "/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "invalid credentials"}`, w.Body.String())

	// Missing fields are unprocessable
	w = doRequest(router, http.MethodPost, "/login", "", gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	setup()
	defer teardown()
	router := newTestRouter()

	registerUser(t, router, "alice@example.com", "secret123")
	token := loginUser(t, router, "alice@example.com", "secret123")

	w := doRequest(router, http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/status", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	counts := body["counts"].(map[string]any)
	assert.Equal(t, float64(1), counts["users"])
}
