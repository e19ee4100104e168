package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"snapfeed/internal/imaging"
	"snapfeed/internal/logger"
	"snapfeed/internal/models"
	"snapfeed/internal/repositories"
	"snapfeed/internal/services/dto"
	"snapfeed/internal/storage"
	"snapfeed/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostService turns a validated create-post request into a durable Post,
// or a classified failure. At most one record is persisted per successful
// call and none on any failure; no automatic retries.
type PostService interface {
	// CreatePost uploads the image, then persists the record. An upload
	// failure returns UploadFailed and never touches the repository; a
	// repository failure returns PersistenceFailed and rolls the uploaded
	// object back best-effort.
	CreatePost(ctx context.Context, db *gorm.DB, req *dto.CreatePostRequest) (*models.Post, error)

	// ListPosts returns every post, most recently created first.
	ListPosts(ctx context.Context, db *gorm.DB) ([]models.Post, error)
}

type postService struct {
	postRepo   repositories.PostRepository
	store      storage.ObjectStore
	thumbnails *imaging.Processor
}

func NewPostService(
	postRepo repositories.PostRepository,
	store storage.ObjectStore,
	thumbnails *imaging.Processor,
) PostService {
	return &postService{
		postRepo:   postRepo,
		store:      store,
		thumbnails: thumbnails,
	}
}

func (s *postService) CreatePost(ctx context.Context, db *gorm.DB, req *dto.CreatePostRequest) (*models.Post, error) {
	data, err := readUpload(req.File)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	key := objectKey(req.MimeType, req.File.Filename)

	result, err := s.store.Upload(ctx, key, bytes.NewReader(data), req.MimeType)
	if err != nil {
		logger.CtxWithError(ctx, "image upload failed", err, "key", key)
		return nil, apperrors.UploadFailed(err)
	}

	// Thumbnail and dimensions are best effort: a post without them is
	// still a complete post.
	thumbURL, thumbKey := s.makeThumbnail(ctx, data, key)

	post := &models.Post{
		ImageURL:     result.URL,
		Caption:      req.Caption,
		ThumbnailURL: thumbURL,
		StorageKey:   result.Key,
		Metadata:     s.buildMetadata(ctx, req, data),
	}

	if err := s.postRepo.Create(db, post); err != nil {
		logger.CtxWithError(ctx, "post insert failed, rolling back uploaded object", err, "key", key)
		s.rollbackUpload(ctx, result.Key, thumbKey)
		return nil, apperrors.PersistenceFailed(err)
	}

	logger.CtxInfo(ctx, "post created", "post_id", post.ID, "key", key)
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, db *gorm.DB) ([]models.Post, error) {
	posts, err := s.postRepo.FindAllNewestFirst(db)
	if err != nil {
		logger.CtxWithError(ctx, "post listing failed", err)
		return nil, apperrors.InternalError(err)
	}
	return posts, nil
}

// makeThumbnail scales the image down and uploads it next to the original.
// Any failure is logged and swallowed.
func (s *postService) makeThumbnail(ctx context.Context, data []byte, originalKey string) (url, key string) {
	thumbData, err := s.thumbnails.Thumbnail(data)
	if err != nil {
		logger.CtxWarn(ctx, "thumbnail generation skipped", "key", originalKey, "error", err.Error())
		return "", ""
	}

	thumbKey := thumbnailKey(originalKey)
	result, err := s.store.Upload(ctx, thumbKey, bytes.NewReader(thumbData), "image/jpeg")
	if err != nil {
		logger.CtxWarn(ctx, "thumbnail upload skipped", "key", thumbKey, "error", err.Error())
		return "", ""
	}

	return result.URL, result.Key
}

func (s *postService) buildMetadata(ctx context.Context, req *dto.CreatePostRequest, data []byte) datatypes.JSON {
	meta := models.PostMetadata{
		OriginalName: req.File.Filename,
		Size:         int64(len(data)),
		MimeType:     req.MimeType,
	}

	if w, h, err := imaging.Dimensions(data); err == nil {
		meta.Width = w
		meta.Height = h
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		logger.CtxWarn(ctx, "metadata encoding skipped", "error", err.Error())
		return nil
	}
	return datatypes.JSON(encoded)
}

// rollbackUpload removes the objects stored before a failed insert. The
// remote store is the source design's known orphan risk; a failed delete
// only leaves what would have leaked anyway, so it is logged and ignored.
func (s *postService) rollbackUpload(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logger.CtxWarn(ctx, "failed to roll back uploaded object", "key", key, "error", err.Error())
		}
	}
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}

// objectKey builds a collision-free store key for the original image.
func objectKey(mimeType, originalName string) string {
	return fmt.Sprintf("posts/%s%s", uuid.NewString(), extensionFor(mimeType, originalName))
}

func thumbnailKey(originalKey string) string {
	base := filepath.Base(originalKey)
	ext := filepath.Ext(base)
	return fmt.Sprintf("thumbs/%s.jpg", base[:len(base)-len(ext)])
}

func extensionFor(mimeType, originalName string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := filepath.Ext(originalName); ext != "" {
		return ext
	}
	return ".bin"
}
