package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"snapfeed/internal/handlers"
	"snapfeed/internal/imaging"
	"snapfeed/internal/middleware"
	"snapfeed/internal/models"
	"snapfeed/internal/routes"
	"snapfeed/internal/services"
	"snapfeed/internal/storage"
	"snapfeed/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

// ============================================
// In-memory collaborators
// ============================================

type memStore struct {
	uploadErr error
	objects   map[string][]byte
}

func (m *memStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*storage.UploadResult, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return &storage.UploadResult{URL: "https://cdn.test/" + key, Key: key}, nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

type memRepo struct {
	posts []models.Post
	now   time.Time
}

func (m *memRepo) Create(db *gorm.DB, post *models.Post) error {
	m.now = m.now.Add(time.Minute)
	post.ID = uuid.NewString()
	post.CreatedAt = m.now
	post.UpdatedAt = m.now
	m.posts = append(m.posts, *post)
	return nil
}

func (m *memRepo) FindAllNewestFirst(db *gorm.DB) ([]models.Post, error) {
	out := make([]models.Post, 0, len(m.posts))
	for i := len(m.posts) - 1; i >= 0; i-- {
		out = append(out, m.posts[i])
	}
	return out, nil
}

// ============================================
// Harness
// ============================================

func newTestRouter(store *memStore, repo *memRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	v := validator.New(validator.UploadRules{})
	svc := services.NewPostService(repo, store, imaging.NewProcessor(150, 85))
	handler := handlers.NewPostHandler(handlers.NewBaseHandler(v), svc)

	r := gin.New()
	r.Use(middleware.DBMiddleware(nil))
	routes.RegisterRoutes(r, handler)
	return r
}

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		img.Set(x, x%48, color.RGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func postMultipart(t *testing.T, r *gin.Engine, filename, contentType string, fileData []byte, caption *string) *httptest.ResponseRecorder {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	if fileData != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	if caption != nil {
		require.NoError(t, writer.WriteField("caption", *caption))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/create-post", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func str(s string) *string { return &s }

// ============================================
// Tests
// ============================================

func TestCreatePostEndToEnd(t *testing.T) {
	store := &memStore{}
	repo := &memRepo{}
	r := newTestRouter(store, repo)

	w := postMultipart(t, r, "sample.jpg", "image/jpeg", testImage(t), str("Hello world"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["imageUrl"])
	assert.Equal(t, "Hello world", data["caption"])
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, data["createdAt"], data["updatedAt"])

	require.Len(t, repo.posts, 1)
	assert.NotEmpty(t, repo.posts[0].ImageURL)
}

func TestCreatePostTrimsCaption(t *testing.T) {
	r := newTestRouter(&memStore{}, &memRepo{})

	w := postMultipart(t, r, "sample.jpg", "image/jpeg", testImage(t), str("  padded caption  "))
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "padded caption", data["caption"])
}

func TestCreatePostRejectsNonImage(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(&memStore{}, repo)

	w := postMultipart(t, r, "document.pdf", "application/pdf", []byte("%PDF-1.4"), str("test"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UnsupportedMediaType", body["errorKind"])
	assert.Empty(t, repo.posts)
}

func TestCreatePostRejectsEmptyCaption(t *testing.T) {
	r := newTestRouter(&memStore{}, &memRepo{})

	w := postMultipart(t, r, "sample.jpg", "image/jpeg", testImage(t), str(""))
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "MissingCaption", body["errorKind"])
}

func TestCreatePostRejectsMissingFile(t *testing.T) {
	r := newTestRouter(&memStore{}, &memRepo{})

	w := postMultipart(t, r, "", "", nil, str("a caption without a file"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "MissingFile", body["errorKind"])
}

func TestCreatePostUploadFailure(t *testing.T) {
	store := &memStore{uploadErr: errors.New("auth expired")}
	repo := &memRepo{}
	r := newTestRouter(store, repo)

	w := postMultipart(t, r, "sample.jpg", "image/jpeg", testImage(t), str("doomed"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UploadFailed", body["errorKind"])
	assert.Empty(t, repo.posts, "no record may exist after a failed upload")
}

func TestListPosts(t *testing.T) {
	store := &memStore{}
	repo := &memRepo{}
	r := newTestRouter(store, repo)

	for _, caption := range []string{"older", "newer"} {
		w := postMultipart(t, r, caption+".jpg", "image/jpeg", testImage(t), str(caption))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	first := data[0].(map[string]any)
	second := data[1].(map[string]any)
	assert.Equal(t, "newer", first["caption"], "most recently created post comes first")
	assert.Equal(t, "older", second["caption"])
}

func TestListPostsEmptyRepository(t *testing.T) {
	r := newTestRouter(&memStore{}, &memRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])

	data, ok := body["data"].([]any)
	require.True(t, ok, "data must be an empty array, not null")
	assert.Empty(t, data)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&memStore{}, &memRepo{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["timestamp"])
}
