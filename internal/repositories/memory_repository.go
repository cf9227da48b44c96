package repositories

import (
	"fmt"
	"sync"
	"time"

	"cinehub/internal/models"
)

// MemoryRepository is an in-memory implementation of Repository, used in
// tests and local runs without a database. Listings preserve insertion order.
type MemoryRepository[T any, PT interface {
	*T
	Entity
}] struct {
	mu     sync.RWMutex
	items  map[uint]T
	order  []uint
	nextID uint
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository[T any, PT interface {
	*T
	Entity
}]() *MemoryRepository[T, PT] {
	return &MemoryRepository[T, PT]{
		items: make(map[uint]T),
	}
}

// Create adds a new entity, assigning the next ID if none is set.
func (r *MemoryRepository[T, PT]) Create(entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pt := PT(entity)
	if pt.GetID() == 0 {
		r.nextID++
		pt.SetID(r.nextID)
	} else if pt.GetID() > r.nextID {
		r.nextID = pt.GetID()
	}
	r.items[pt.GetID()] = *entity
	r.order = append(r.order, pt.GetID())
	return nil
}

// ListActive returns all active entities in insertion order.
func (r *MemoryRepository[T, PT]) ListActive() ([]T, error) {
	return r.list(true), nil
}

// ListInactive returns all soft-deleted entities in insertion order.
func (r *MemoryRepository[T, PT]) ListInactive() ([]T, error) {
	return r.list(false), nil
}

func (r *MemoryRepository[T, PT]) list(active bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if PT(&item).Active() == active {
			out = append(out, item)
		}
	}
	return out
}

// GetByID returns an active entity by its ID.
func (r *MemoryRepository[T, PT]) GetByID(id uint) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || !PT(&item).Active() {
		return nil, fmt.Errorf("record with ID %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// GetAnyByID returns an entity by its ID regardless of the active flag.
func (r *MemoryRepository[T, PT]) GetAnyByID(id uint) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("record with ID %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Update replaces an existing entity.
func (r *MemoryRepository[T, PT]) Update(entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(entity).GetID()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("record to update: %w", ErrNotFound)
	}
	r.items[id] = *entity
	return nil
}

// SoftDelete marks an entity inactive. Idempotent for inactive rows.
func (r *MemoryRepository[T, PT]) SoftDelete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("record with ID %d: %w", id, ErrNotFound)
	}
	pt := PT(&item)
	if pt.Active() {
		pt.MarkDeleted(time.Now())
		r.items[id] = item
	}
	return nil
}

// Restore brings a soft-deleted entity back.
func (r *MemoryRepository[T, PT]) Restore(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("record with ID %d: %w", id, ErrNotFound)
	}
	pt := PT(&item)
	pt.MarkRestored()
	r.items[id] = item
	return nil
}

func (r *MemoryRepository[T, PT]) snapshot() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	*MemoryRepository[models.User, *models.User]
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{NewMemoryRepository[models.User, *models.User]()}
}

// FindByEmail returns the user holding the given email.
func (r *MemoryUserRepository) FindByEmail(email string, activeOnly bool) (*models.User, error) {
	for _, u := range r.snapshot() {
		if u.Email == email && (!activeOnly || u.IsActive) {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// MemoryTitleRepository is an in-memory TitleRepository.
type MemoryTitleRepository struct {
	*MemoryRepository[models.Title, *models.Title]
}

// NewMemoryTitleRepository creates an empty MemoryTitleRepository.
func NewMemoryTitleRepository() *MemoryTitleRepository {
	return &MemoryTitleRepository{NewMemoryRepository[models.Title, *models.Title]()}
}

// FindByName returns the title holding the given unique name.
func (r *MemoryTitleRepository) FindByName(name string, activeOnly bool) (*models.Title, error) {
	for _, t := range r.snapshot() {
		if t.Name == name && (!activeOnly || t.IsActive) {
			title := t
			return &title, nil
		}
	}
	return nil, fmt.Errorf("title %q: %w", name, ErrNotFound)
}

// MemoryRatingRepository is an in-memory RatingRepository. It needs the
// title repository to resolve the active-title filter for aggregates.
type MemoryRatingRepository struct {
	*MemoryRepository[models.Rating, *models.Rating]
	titles TitleRepository
}

// NewMemoryRatingRepository creates an empty MemoryRatingRepository.
func NewMemoryRatingRepository(titles TitleRepository) *MemoryRatingRepository {
	return &MemoryRatingRepository{
		MemoryRepository: NewMemoryRepository[models.Rating, *models.Rating](),
		titles:           titles,
	}
}

// FindByComment returns the first active rating with the given comment.
func (r *MemoryRatingRepository) FindByComment(comment string) (*models.Rating, error) {
	for _, rt := range r.snapshot() {
		if rt.Comment == comment && rt.IsActive {
			rating := rt
			return &rating, nil
		}
	}
	return nil, fmt.Errorf("rating with comment %q: %w", comment, ErrNotFound)
}

// FindActiveByUserAndTitle returns the active rating a user gave a title.
func (r *MemoryRatingRepository) FindActiveByUserAndTitle(userID, titleID uint) (*models.Rating, error) {
	for _, rt := range r.snapshot() {
		if rt.IsActive && rt.UserID == userID && rt.TitleID == titleID {
			rating := rt
			return &rating, nil
		}
	}
	return nil, fmt.Errorf("rating by user %d for title %d: %w", userID, titleID, ErrNotFound)
}

// ListActiveByTitle returns all active ratings for one title.
func (r *MemoryRatingRepository) ListActiveByTitle(titleID uint) ([]models.Rating, error) {
	var out []models.Rating
	for _, rt := range r.snapshot() {
		if rt.IsActive && rt.TitleID == titleID {
			out = append(out, rt)
		}
	}
	return out, nil
}

// ListActiveWithActiveTitle returns active ratings whose title is active.
func (r *MemoryRatingRepository) ListActiveWithActiveTitle() ([]models.Rating, error) {
	var out []models.Rating
	for _, rt := range r.snapshot() {
		if !rt.IsActive {
			continue
		}
		if _, err := r.titles.GetByID(rt.TitleID); err != nil {
			continue
		}
		out = append(out, rt)
	}
	return out, nil
}

// MemoryRoutineRepository is an in-memory RoutineRepository.
type MemoryRoutineRepository struct {
	*MemoryRepository[models.Routine, *models.Routine]
}

// NewMemoryRoutineRepository creates an empty MemoryRoutineRepository.
func NewMemoryRoutineRepository() *MemoryRoutineRepository {
	return &MemoryRoutineRepository{NewMemoryRepository[models.Routine, *models.Routine]()}
}

// FindByName returns the first active routine with the given name.
func (r *MemoryRoutineRepository) FindByName(name string) (*models.Routine, error) {
	for _, rt := range r.snapshot() {
		if rt.Name == name && rt.IsActive {
			routine := rt
			return &routine, nil
		}
	}
	return nil, fmt.Errorf("routine %q: %w", name, ErrNotFound)
}
