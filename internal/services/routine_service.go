package services

import (
	"fmt"
	"time"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/pkg/events"
)

// RoutineInput carries the form-decoded fields for creating or updating a
// viewing routine. StartDate and EndDate span an inclusive range.
type RoutineInput struct {
	Name      string
	UserID    uint
	TitleID   uint
	StartDate time.Time
	EndDate   time.Time
}

// RoutineService handles business logic related to viewing routines.
type RoutineService struct {
	routines repositories.RoutineRepository
	users    repositories.UserRepository
	titles   repositories.TitleRepository
	events   *events.Client
}

// NewRoutineService creates a new RoutineService.
func NewRoutineService(routines repositories.RoutineRepository, users repositories.UserRepository, titles repositories.TitleRepository, ev *events.Client) *RoutineService {
	return &RoutineService{
		routines: routines,
		users:    users,
		titles:   titles,
		events:   ev,
	}
}

func validateRange(start, end time.Time) error {
	if end.Before(start) {
		return &ValidationError{
			Field:   "end_date",
			Value:   end.Format(DateLayout),
			Message: "end date must not be before start date",
		}
	}
	return nil
}

func (s *RoutineService) checkReferences(userID, titleID uint) error {
	if _, err := s.users.GetByID(userID); err != nil {
		return fmt.Errorf("referenced user %d: %w", userID, err)
	}
	if _, err := s.titles.GetByID(titleID); err != nil {
		return fmt.Errorf("referenced title %d: %w", titleID, err)
	}
	return nil
}

// CreateRoutine persists a new routine after validating the date range and
// that both referenced entities exist and are active.
func (s *RoutineService) CreateRoutine(input RoutineInput) (*models.Routine, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if err := s.checkReferences(input.UserID, input.TitleID); err != nil {
		return nil, err
	}

	routine := &models.Routine{
		Name:       input.Name,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		UserID:     input.UserID,
		TitleID:    input.TitleID,
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	if err := s.routines.Create(routine); err != nil {
		return nil, err
	}

	publishEvent(s.events, "routine.created", map[string]interface{}{
		"id":       routine.ID,
		"user_id":  routine.UserID,
		"title_id": routine.TitleID,
	})
	return routine, nil
}

// UpdateRoutine applies the mutable fields to an active routine. User and
// title may be reassigned; the new targets must be active.
func (s *RoutineService) UpdateRoutine(id uint, input RoutineInput) (*models.Routine, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	routine, err := s.routines.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(input.UserID, input.TitleID); err != nil {
		return nil, err
	}

	routine.Name = input.Name
	routine.StartDate = input.StartDate
	routine.EndDate = input.EndDate
	routine.UserID = input.UserID
	routine.TitleID = input.TitleID

	if err := s.routines.Update(routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// GetRoutineByID retrieves a single active routine.
func (s *RoutineService) GetRoutineByID(id uint) (*models.Routine, error) {
	return s.routines.GetByID(id)
}

// GetRoutineByName retrieves the first active routine with the given name.
func (s *RoutineService) GetRoutineByName(name string) (*models.Routine, error) {
	return s.routines.FindByName(name)
}

// ListRoutines retrieves all active routines.
func (s *RoutineService) ListRoutines() ([]models.Routine, error) {
	return s.routines.ListActive()
}

// ListDeletedRoutines retrieves all soft-deleted routines.
func (s *RoutineService) ListDeletedRoutines() ([]models.Routine, error) {
	return s.routines.ListInactive()
}

// DeleteRoutine soft-deletes a routine.
func (s *RoutineService) DeleteRoutine(id uint) error {
	if err := s.routines.SoftDelete(id); err != nil {
		return err
	}
	publishEvent(s.events, "routine.deleted", map[string]interface{}{"id": id})
	return nil
}

// RestoreRoutine brings a soft-deleted routine back.
func (s *RoutineService) RestoreRoutine(id uint) error {
	if err := s.routines.Restore(id); err != nil {
		return err
	}
	publishEvent(s.events, "routine.restored", map[string]interface{}{"id": id})
	return nil
}
