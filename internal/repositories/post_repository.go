package repositories

import (
	"snapfeed/internal/models"

	"gorm.io/gorm"
)

// PostRepository is the persistence collaborator of the ingest pipeline.
// The *gorm.DB handle (pool or transaction) is passed per call.
type PostRepository interface {
	// Create inserts the post and fills its generated fields (id,
	// timestamps) on success.
	Create(db *gorm.DB, post *models.Post) error

	// FindAllNewestFirst returns every post ordered by creation time
	// descending. An empty table yields an empty slice, not an error.
	FindAllNewestFirst(db *gorm.DB) ([]models.Post, error)
}

type postRepository struct{}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *postRepository) FindAllNewestFirst(db *gorm.DB) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := db.Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
