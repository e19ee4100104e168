package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithErrorDoesNotMutateSentinel(t *testing.T) {
	cause := errors.New("boom")
	wrapped := ErrUploadFailed.WithError(cause)

	assert.Nil(t, ErrUploadFailed.Err, "sentinel must stay clean")
	assert.Equal(t, cause, wrapped.Err)
	assert.Equal(t, CodeUploadFailed, wrapped.Code)
	assert.Equal(t, ErrUploadFailed.HTTPCode, wrapped.HTTPCode)
}

func TestUnwrapChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := PersistenceFailed(cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, CodePersistenceFailed, appErr.Code)
}

func TestStatusCodes(t *testing.T) {
	for _, e := range []*AppError{
		ErrMissingFile, ErrUnsupportedMediaType, ErrPayloadTooLarge,
		ErrMissingCaption, ErrUploadFailed, ErrPersistenceFailed,
	} {
		assert.Equal(t, http.StatusBadRequest, e.HTTPCode, string(e.Code))
	}
	assert.Equal(t, http.StatusInternalServerError, ErrInternal.HTTPCode)
}

func TestHandleErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/create-post", nil)

	HandleError(c, ErrUnsupportedMediaType)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, CodeUnsupportedMediaType, body.ErrorKind)
	assert.NotEmpty(t, body.Message)
}

func TestHandleErrorReclassifiesUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/post", nil)

	HandleError(c, errors.New("pq: relation does not exist"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, CodeInternal, body.ErrorKind)
	assert.NotContains(t, body.Message, "pq:", "collaborator details must not leak")
}
