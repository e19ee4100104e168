package models

import (
	"gorm.io/datatypes"
)

// Post links an uploaded image's public URL to a caption. Records are
// created once by the ingest pipeline and never updated or deleted.
type Post struct {
	BaseModel
	ImageURL     string `gorm:"column:image_url;not null" json:"imageUrl"`
	Caption      string `gorm:"not null" json:"caption"`
	ThumbnailURL string `gorm:"column:thumbnail_url" json:"thumbnailUrl,omitempty"`

	// Object-store key of the original image, kept so a failed insert can
	// roll the upload back.
	StorageKey string `gorm:"column:storage_key" json:"-"`

	// Original filename, byte size, MIME type and pixel dimensions.
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
}

// PostMetadata is the shape serialized into Post.Metadata.
type PostMetadata struct {
	OriginalName string `json:"originalName,omitempty"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}
