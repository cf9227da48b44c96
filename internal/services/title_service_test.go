package services_test

import (
	"testing"

	"cinehub/internal/repositories"
	"cinehub/internal/services"

	"github.com/stretchr/testify/assert"
)

func titleInput(name string) services.TitleInput {
	return services.TitleInput{
		Name:        name,
		Genre:       "Drama",
		ReleaseYear: 2020,
		Duration:    120,
		Description: "A film",
	}
}

func TestTitleService_CreateTitle(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	title, err := service.CreateTitle(titleInput("Arrival"))
	assert.NoError(t, err)
	assert.NotZero(t, title.ID)
	assert.True(t, title.IsActive)
}

func TestTitleService_CreateTitle_DuplicateName(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	_, err := service.CreateTitle(titleInput("Arrival"))
	assert.NoError(t, err)

	_, err = service.CreateTitle(titleInput("Arrival"))
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestTitleService_CreateTitle_NameFreeAfterSoftDelete(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	first, err := service.CreateTitle(titleInput("Arrival"))
	assert.NoError(t, err)
	assert.NoError(t, service.DeleteTitle(first.ID))

	// The uniqueness pre-check only considers active rows.
	_, err = service.CreateTitle(titleInput("Arrival"))
	assert.NoError(t, err)
}

func TestTitleService_CreateTitle_NonPositiveDuration(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	input := titleInput("Short")
	input.Duration = 0

	_, err := service.CreateTitle(input)
	assert.Error(t, err)
	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "duration", vErr.Field)
	assert.Equal(t, "0", vErr.Value)

	titles, err := service.ListTitles()
	assert.NoError(t, err)
	assert.Empty(t, titles)
}

func TestTitleService_CreateTitle_ImplausibleReleaseYear(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	input := titleInput("Prehistoric")
	input.ReleaseYear = 1500

	_, err := service.CreateTitle(input)
	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "release_year", vErr.Field)
}

func TestTitleService_UpdateTitle_SameNameNoConflict(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	title, err := service.CreateTitle(titleInput("Arrival"))
	assert.NoError(t, err)

	// Re-submitting the unchanged name must not trip the uniqueness check.
	input := titleInput("Arrival")
	input.Genre = "Sci-Fi"
	updated, err := service.UpdateTitle(title.ID, input)
	assert.NoError(t, err)
	assert.Equal(t, "Sci-Fi", updated.Genre)
}

func TestTitleService_SoftDeleteHidesAndRestoreRevives(t *testing.T) {
	repo := repositories.NewMemoryTitleRepository()
	service := services.NewTitleService(repo, nil, nil)

	title, err := service.CreateTitle(titleInput("Arrival"))
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteTitle(title.ID))
	_, err = service.GetTitleByID(title.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	deleted, err := service.ListDeletedTitles()
	assert.NoError(t, err)
	assert.Len(t, deleted, 1)
	assert.NotNil(t, deleted[0].DeletedAt)

	assert.NoError(t, service.RestoreTitle(title.ID))
	restored, err := service.GetTitleByID(title.ID)
	assert.NoError(t, err)
	assert.True(t, restored.IsActive)
	assert.Nil(t, restored.DeletedAt)
}
