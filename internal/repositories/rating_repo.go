package repositories

import (
	"errors"
	"fmt"

	"cinehub/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	Repository[models.Rating]
	FindByComment(comment string) (*models.Rating, error)
	FindActiveByUserAndTitle(userID, titleID uint) (*models.Rating, error)
	ListActiveByTitle(titleID uint) ([]models.Rating, error)
	ListActiveWithActiveTitle() ([]models.Rating, error)
}

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	*GORMRepository[models.Rating]
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		GORMRepository: NewGORMRepository[models.Rating](db),
		db:             db,
	}
}

// FindByComment retrieves the first active rating with the given comment.
func (r *GORMRatingRepository) FindByComment(comment string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("is_active = ?", true).First(&rating, "comment = ?", comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating with comment %q: %w", comment, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating by comment %q: %w", comment, err)
	}
	return &rating, nil
}

// FindActiveByUserAndTitle retrieves the active rating a user gave a title,
// if any. Used by the one-rating-per-user-per-title business rule.
func (r *GORMRatingRepository) FindActiveByUserAndTitle(userID, titleID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("is_active = ? AND user_id = ? AND title_id = ?", true, userID, titleID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating by user %d for title %d: %w", userID, titleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating by user %d and title %d: %w", userID, titleID, err)
	}
	return &rating, nil
}

// ListActiveByTitle returns all active ratings for one title.
func (r *GORMRatingRepository) ListActiveByTitle(titleID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("is_active = ? AND title_id = ?", true, titleID).Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for title %d: %w", titleID, err)
	}
	return ratings, nil
}

// ListActiveWithActiveTitle returns active ratings whose title is also
// active. Aggregates are computed only over these rows.
func (r *GORMRatingRepository) ListActiveWithActiveTitle() ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.
		Joins("JOIN titles ON titles.id = ratings.title_id AND titles.is_active = ?", true).
		Where("ratings.is_active = ?", true).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings with active titles: %w", err)
	}
	return ratings, nil
}
