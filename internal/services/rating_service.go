package services

import (
	"fmt"
	"strconv"
	"time"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/pkg/events"
)

// MaxScore is the upper bound of the rating scale.
const MaxScore = 5.0

// RatingInput carries the form-decoded fields for creating or updating a
// rating.
type RatingInput struct {
	UserID  uint
	TitleID uint
	Score   float64
	Comment string
	Date    time.Time
}

// RatingService handles business logic related to ratings. Creating or
// reassigning a rating requires both referenced entities to exist and be
// active; soft-deleted targets are treated as absent.
type RatingService struct {
	ratings repositories.RatingRepository
	users   repositories.UserRepository
	titles  repositories.TitleRepository
	events  *events.Client

	// uniquePerTitle enforces one active rating per user per title. It is
	// a business rule toggled by configuration, not a storage constraint.
	uniquePerTitle bool
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratings repositories.RatingRepository, users repositories.UserRepository, titles repositories.TitleRepository, ev *events.Client, uniquePerTitle bool) *RatingService {
	return &RatingService{
		ratings:        ratings,
		users:          users,
		titles:         titles,
		events:         ev,
		uniquePerTitle: uniquePerTitle,
	}
}

func validateScore(score float64) error {
	if score <= 0 || score > MaxScore {
		return &ValidationError{
			Field:   "score",
			Value:   strconv.FormatFloat(score, 'f', -1, 64),
			Message: fmt.Sprintf("score must be greater than 0 and at most %g", MaxScore),
		}
	}
	return nil
}

// checkReferences verifies that the referenced user and title exist and are
// active.
func (s *RatingService) checkReferences(userID, titleID uint) error {
	if _, err := s.users.GetByID(userID); err != nil {
		return fmt.Errorf("referenced user %d: %w", userID, err)
	}
	if _, err := s.titles.GetByID(titleID); err != nil {
		return fmt.Errorf("referenced title %d: %w", titleID, err)
	}
	return nil
}

// CreateRating persists a new rating after validating the score, both
// references, and the optional one-rating-per-user-per-title rule.
func (s *RatingService) CreateRating(input RatingInput) (*models.Rating, error) {
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}
	if err := s.checkReferences(input.UserID, input.TitleID); err != nil {
		return nil, err
	}
	if s.uniquePerTitle {
		if existing, err := s.ratings.FindActiveByUserAndTitle(input.UserID, input.TitleID); err == nil && existing != nil {
			return nil, fmt.Errorf("user %d already rated title %d: %w", input.UserID, input.TitleID, ErrConflict)
		}
	}

	rating := &models.Rating{
		Score:      input.Score,
		Comment:    input.Comment,
		Date:       input.Date,
		UserID:     input.UserID,
		TitleID:    input.TitleID,
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	if err := s.ratings.Create(rating); err != nil {
		return nil, err
	}

	publishEvent(s.events, "rating.created", map[string]interface{}{
		"id":       rating.ID,
		"user_id":  rating.UserID,
		"title_id": rating.TitleID,
		"score":    rating.Score,
	})
	return rating, nil
}

// UpdateRating applies the mutable fields to an active rating. User and
// title may be reassigned; the new targets must be active.
func (s *RatingService) UpdateRating(id uint, input RatingInput) (*models.Rating, error) {
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}

	rating, err := s.ratings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(input.UserID, input.TitleID); err != nil {
		return nil, err
	}
	// Reassigning the pair must not collide with another active rating.
	// The unchanged pair would only find this rating itself.
	if s.uniquePerTitle && (input.UserID != rating.UserID || input.TitleID != rating.TitleID) {
		if existing, err := s.ratings.FindActiveByUserAndTitle(input.UserID, input.TitleID); err == nil && existing != nil {
			return nil, fmt.Errorf("user %d already rated title %d: %w", input.UserID, input.TitleID, ErrConflict)
		}
	}

	rating.Score = input.Score
	rating.Comment = input.Comment
	rating.Date = input.Date
	rating.UserID = input.UserID
	rating.TitleID = input.TitleID

	if err := s.ratings.Update(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// GetRatingByID retrieves a single active rating.
func (s *RatingService) GetRatingByID(id uint) (*models.Rating, error) {
	return s.ratings.GetByID(id)
}

// GetRatingByComment retrieves the first active rating with the given
// comment.
func (s *RatingService) GetRatingByComment(comment string) (*models.Rating, error) {
	return s.ratings.FindByComment(comment)
}

// ListRatings retrieves all active ratings.
func (s *RatingService) ListRatings() ([]models.Rating, error) {
	return s.ratings.ListActive()
}

// ListDeletedRatings retrieves all soft-deleted ratings.
func (s *RatingService) ListDeletedRatings() ([]models.Rating, error) {
	return s.ratings.ListInactive()
}

// DeleteRating soft-deletes a rating.
func (s *RatingService) DeleteRating(id uint) error {
	if err := s.ratings.SoftDelete(id); err != nil {
		return err
	}
	publishEvent(s.events, "rating.deleted", map[string]interface{}{"id": id})
	return nil
}

// RestoreRating brings a soft-deleted rating back.
func (s *RatingService) RestoreRating(id uint) error {
	if err := s.ratings.Restore(id); err != nil {
		return err
	}
	publishEvent(s.events, "rating.restored", map[string]interface{}{"id": id})
	return nil
}
