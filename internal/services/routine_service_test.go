package services_test

import (
	"testing"
	"time"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/internal/services"

	"github.com/stretchr/testify/assert"
)

func newRoutineService(t *testing.T) (*services.RoutineService, *models.User, *models.Title, *repositories.MemoryRoutineRepository) {
	t.Helper()
	users := repositories.NewMemoryUserRepository()
	titles := repositories.NewMemoryTitleRepository()
	routines := repositories.NewMemoryRoutineRepository()

	user := &models.User{Name: "Ana", Email: "ana@example.com", SoftDelete: models.SoftDelete{IsActive: true}}
	assert.NoError(t, users.Create(user))
	title := &models.Title{Name: "Twin Peaks", Genre: "Mystery", ReleaseYear: 1990, Duration: 47, SoftDelete: models.SoftDelete{IsActive: true}}
	assert.NoError(t, titles.Create(title))

	return services.NewRoutineService(routines, users, titles, nil), user, title, routines
}

func TestRoutineService_CreateRoutine(t *testing.T) {
	service, user, title, repo := newRoutineService(t)

	routine, err := service.CreateRoutine(services.RoutineInput{
		Name:      "Weekend marathon",
		UserID:    user.ID,
		TitleID:   title.ID,
		StartDate: day(2024, time.July, 5),
		EndDate:   day(2024, time.July, 7),
	})

	assert.NoError(t, err)
	assert.NotZero(t, routine.ID)
	assert.True(t, routine.IsActive)

	active, err := repo.ListActive()
	assert.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestRoutineService_CreateRoutine_StartAfterEnd(t *testing.T) {
	service, user, title, repo := newRoutineService(t)

	_, err := service.CreateRoutine(services.RoutineInput{
		Name:      "Backwards",
		UserID:    user.ID,
		TitleID:   title.ID,
		StartDate: day(2024, time.July, 7),
		EndDate:   day(2024, time.July, 5),
	})

	assert.Error(t, err)
	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "end_date", vErr.Field)
	assert.Equal(t, "2024-07-05", vErr.Value)

	active, err := repo.ListActive()
	assert.NoError(t, err)
	assert.Empty(t, active)
}

func TestRoutineService_SingleDayRangeIsValid(t *testing.T) {
	service, user, title, _ := newRoutineService(t)

	_, err := service.CreateRoutine(services.RoutineInput{
		Name:      "Movie night",
		UserID:    user.ID,
		TitleID:   title.ID,
		StartDate: day(2024, time.July, 5),
		EndDate:   day(2024, time.July, 5),
	})
	assert.NoError(t, err)
}

func TestRoutineService_CreateRoutine_MissingReferences(t *testing.T) {
	service, user, title, _ := newRoutineService(t)

	_, err := service.CreateRoutine(services.RoutineInput{
		Name:      "No such user",
		UserID:    user.ID + 99,
		TitleID:   title.ID,
		StartDate: day(2024, time.July, 5),
		EndDate:   day(2024, time.July, 6),
	})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = service.CreateRoutine(services.RoutineInput{
		Name:      "No such title",
		UserID:    user.ID,
		TitleID:   title.ID + 99,
		StartDate: day(2024, time.July, 5),
		EndDate:   day(2024, time.July, 6),
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRoutineService_GetRoutineByName(t *testing.T) {
	service, user, title, _ := newRoutineService(t)

	created, err := service.CreateRoutine(services.RoutineInput{
		Name:      "Findable",
		UserID:    user.ID,
		TitleID:   title.ID,
		StartDate: day(2024, time.July, 5),
		EndDate:   day(2024, time.July, 6),
	})
	assert.NoError(t, err)

	found, err := service.GetRoutineByName("Findable")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetRoutineByName("Missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
