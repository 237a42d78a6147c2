package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-kanban/internal/services"
	"github.com/adanyl0v/go-kanban/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	repo := testutil.NewFakeRepository()
	logger := zerolog.Nop()

	authService := services.NewAuthService(
		logger, repo, "go-kanban-test", []byte("test-signing-key"), time.Hour)
	boardService := services.NewBoardService(logger, repo)
	handler := New(logger, authService, boardService)

	router := gin.New()
	RegisterRoutes(router, handler)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"email":"`+email+`","name":"Test User","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "",
		`{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token, ok := decodeBody(t, rec)["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndMe(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"email":"alice@example.com","name":"Alice","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "Alice", body["name"])
	assert.NotEmpty(t, body["id"])

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["access_token"].(string)

	rec = doJSON(t, router, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "Alice", body["name"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(services.KindConflict), decodeBody(t, rec)["kind"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "",
		`{"email":"alice@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(services.KindUnauthenticated), decodeBody(t, rec)["kind"])

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "",
		`{"email":"nobody@example.com","password":"password123"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/boards", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/boards", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(services.KindUnauthenticated), decodeBody(t, rec)["kind"])

	req := httptest.NewRequest(http.MethodGet, "/boards", nil)
	req.Header.Set("Authorization", "NotBearer something")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestBoardLifecycle(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/boards", token, `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(services.KindValidation), decodeBody(t, rec)["kind"])

	rec = doJSON(t, router, http.MethodPost, "/boards", token, `{"name":"Project Alpha"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	boardID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/boards/"+boardID+"/columns", token, `{"title":"To Do"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	columnID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost,
		"/boards/"+boardID+"/columns/"+columnID+"/tasks", token,
		`{"title":"Set up project repo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	taskBody := decodeBody(t, rec)
	taskID := taskBody["id"].(string)
	assert.Equal(t, "todo", taskBody["status"])

	rec = doJSON(t, router, http.MethodGet, "/boards/"+boardID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody(t, rec)
	columns := board["columns"].([]any)
	require.Len(t, columns, 1)
	column := columns[0].(map[string]any)
	assert.Equal(t, "To Do", column["title"])
	tasks := column["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, taskID, tasks[0].(map[string]any)["id"])

	rec = doJSON(t, router, http.MethodGet, "/boards", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, boardID, list[0]["id"])
}

func TestBoardAccessByAnotherUser(t *testing.T) {
	router := newTestRouter()
	aliceToken := registerAndLogin(t, router, "alice@example.com")
	bobToken := registerAndLogin(t, router, "bob@example.com")

	rec := doJSON(t, router, http.MethodPost, "/boards", aliceToken, `{"name":"Alpha"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	boardID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodGet, "/boards/"+boardID, bobToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, string(services.KindForbidden), decodeBody(t, rec)["kind"])

	rec = doJSON(t, router, http.MethodGet, "/boards/nonexistent-id", bobToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(services.KindNotFound), decodeBody(t, rec)["kind"])

	// Bob's board list must not contain Alice's board, and an
	// empty list serializes as [], not null.
	rec = doJSON(t, router, http.MethodGet, "/boards", bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestTaskMoveAndDelete(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/boards", token, `{"name":"Alpha"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	boardID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/boards/"+boardID+"/columns", token, `{"title":"To Do"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	todoID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/boards/"+boardID+"/columns", token, `{"title":"Done"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	doneID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost,
		"/boards/"+boardID+"/columns/"+todoID+"/tasks", token, `{"title":"ship it"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	taskID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPut, "/boards/tasks/"+taskID, token,
		`{"columnId":"`+doneID+`","status":"done"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decodeBody(t, rec)
	assert.Equal(t, doneID, moved["columnId"])
	assert.Equal(t, "done", moved["status"])

	rec = doJSON(t, router, http.MethodDelete, "/boards/tasks/"+taskID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted successfully", decodeBody(t, rec)["message"])

	rec = doJSON(t, router, http.MethodDelete, "/boards/tasks/"+taskID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTaskUnderForeignColumn(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/boards", token, `{"name":"Alpha"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	alphaID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/boards", token, `{"name":"Beta"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	betaID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/boards/"+betaID+"/columns", token, `{"title":"To Do"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	betaColumnID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost,
		"/boards/"+alphaID+"/columns/"+betaColumnID+"/tasks", token, `{"title":"smuggled"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(services.KindNotFound), decodeBody(t, rec)["kind"])
}
