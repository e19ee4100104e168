package dto

import (
	"mime/multipart"
)

// CreatePostRequest is the validated input handed to the ingest pipeline.
type CreatePostRequest struct {
	// Caption is already trimmed and non-empty.
	Caption string
	// File is the accepted multipart attachment.
	File *multipart.FileHeader
	// MimeType is the declared content type, already checked against the
	// allow-set.
	MimeType string
}

// CreatePostForm binds the non-file fields of the multipart form.
type CreatePostForm struct {
	Caption string `form:"caption" json:"caption"`
}
