package errors

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleErrorSchemaError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", nil)

	testHandler().HandleError(rec, req, NewSchemaError("missing required columns: site"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")

	body := decodeProblem(t, rec)
	assert.Equal(t, TypeSchemaInvalid, body["type"])
	assert.Contains(t, body["detail"], "missing required columns")
	assert.Equal(t, string(ErrTypeSchema), body["error_type"])
}

func TestHandleErrorInputError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", nil)

	err := NewInputError("failed to parse CSV file", nil).WithContext("file", "alarms.csv")
	testHandler().HandleError(rec, req, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInputUnreadable, body["type"])
	ctx, ok := body["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alarms.csv", ctx["file"])
}

func TestHandleErrorAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reconcile/latest", nil)

	testHandler().HandleError(rec, req, ErrRunNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeRunNotFound, body["type"])
	assert.Equal(t, "RUN_NOT_FOUND", body["error_code"])
}

func TestHandleErrorContextCancelled(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", nil)

	testHandler().HandleError(rec, req, context.Canceled)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeTimeout, body["type"])
}

func TestHandleErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	testHandler().HandleError(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	// Internal details never leak to the client.
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(testHandler())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := testHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/reconcile", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
