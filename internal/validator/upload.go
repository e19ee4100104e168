package validator

import (
	"mime/multipart"
	"strings"

	"snapfeed/pkg/apperrors"
)

// UploadRules are the configured limits for a create-post request.
type UploadRules struct {
	MaxSize      int64
	AllowedTypes []string
}

const DefaultMaxSize = 5 * 1024 * 1024 // 5MB

func DefaultAllowedTypes() []string {
	return []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
}

// ValidatedPost is the outcome of a passed ingest gate: the trimmed
// caption plus the accepted file and its declared MIME type.
type ValidatedPost struct {
	Caption  string
	File     *multipart.FileHeader
	MimeType string
}

// ValidatePostUpload gate-keeps a create-post request before any side
// effect happens. Checks run in order and stop at the first failure:
// file attached, MIME type allowed, size within limit, caption non-empty
// after trimming. Pure function of its inputs and the configured rules.
func (v *Validator) ValidatePostUpload(file *multipart.FileHeader, caption string) (*ValidatedPost, *apperrors.AppError) {
	if file == nil {
		return nil, apperrors.ErrMissingFile
	}

	mimeType := file.Header.Get("Content-Type")
	if !v.isAllowedType(mimeType) {
		return nil, apperrors.ErrUnsupportedMediaType
	}

	if file.Size > v.rules.MaxSize {
		return nil, apperrors.ErrPayloadTooLarge
	}

	caption = strings.TrimSpace(caption)
	if caption == "" {
		return nil, apperrors.ErrMissingCaption
	}

	return &ValidatedPost{
		Caption:  caption,
		File:     file,
		MimeType: mimeType,
	}, nil
}

func (v *Validator) isAllowedType(mimeType string) bool {
	for _, allowed := range v.rules.AllowedTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
