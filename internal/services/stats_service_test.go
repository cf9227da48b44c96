package services_test

import (
	"testing"
	"time"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/internal/services"

	"github.com/stretchr/testify/assert"
)

type statsFixture struct {
	users    *repositories.MemoryUserRepository
	titles   *repositories.MemoryTitleRepository
	ratings  *repositories.MemoryRatingRepository
	routines *repositories.MemoryRoutineRepository
	service  *services.StatsService
}

func newStatsFixture() *statsFixture {
	users := repositories.NewMemoryUserRepository()
	titles := repositories.NewMemoryTitleRepository()
	ratings := repositories.NewMemoryRatingRepository(titles)
	routines := repositories.NewMemoryRoutineRepository()
	return &statsFixture{
		users:    users,
		titles:   titles,
		ratings:  ratings,
		routines: routines,
		service:  services.NewStatsService(users, titles, ratings, routines),
	}
}

func (f *statsFixture) addTitle(t *testing.T, name, genre string, year int) *models.Title {
	t.Helper()
	title := &models.Title{
		Name:        name,
		Genre:       genre,
		ReleaseYear: year,
		Duration:    100,
		SoftDelete:  models.SoftDelete{IsActive: true},
	}
	assert.NoError(t, f.titles.Create(title))
	return title
}

func (f *statsFixture) addRating(t *testing.T, titleID uint, score float64) *models.Rating {
	t.Helper()
	rating := &models.Rating{
		Score:      score,
		Date:       time.Now(),
		UserID:     1,
		TitleID:    titleID,
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	assert.NoError(t, f.ratings.Create(rating))
	return rating
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 4.0, services.RoundScore(4.0))
	assert.Equal(t, 4.3, services.RoundScore(4.3))
	assert.Equal(t, 4.3, services.RoundScore((4.25+4.35)/2))
	assert.Equal(t, 3.7, services.RoundScore(11.0/3.0))
	assert.Equal(t, 4.7, services.RoundScore(4.666666))
}

func TestAverageForTitle(t *testing.T) {
	f := newStatsFixture()
	title := f.addTitle(t, "The Keep", "Horror", 1983)
	f.addRating(t, title.ID, 4)
	f.addRating(t, title.ID, 5)
	f.addRating(t, title.ID, 3)

	avg, err := f.service.AverageForTitle(title.ID)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, avg)
}

func TestAverageForTitle_NoRatingsIsZero(t *testing.T) {
	f := newStatsFixture()
	title := f.addTitle(t, "Unseen", "Drama", 2001)

	avg, err := f.service.AverageForTitle(title.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestAverageForTitle_UnknownTitle(t *testing.T) {
	f := newStatsFixture()

	_, err := f.service.AverageForTitle(99)
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOverview_GlobalAverage(t *testing.T) {
	f := newStatsFixture()
	title := f.addTitle(t, "Heat", "Crime", 1995)
	f.addRating(t, title.ID, 4.25)
	f.addRating(t, title.ID, 4.35)

	overview, err := f.service.Overview()
	assert.NoError(t, err)
	assert.Equal(t, 4.3, overview.GlobalAverage)
	assert.Equal(t, 2, overview.RatingCount)
}

func TestOverview_EmptyDatabase(t *testing.T) {
	f := newStatsFixture()

	overview, err := f.service.Overview()
	assert.NoError(t, err)
	assert.Equal(t, 0.0, overview.GlobalAverage)
	assert.Equal(t, 0, overview.TitleCount)
	assert.Empty(t, overview.TopTitles)
}

func TestOverview_ExcludesInactiveTitlesFromAverages(t *testing.T) {
	f := newStatsFixture()
	kept := f.addTitle(t, "Kept", "Drama", 2000)
	dropped := f.addTitle(t, "Dropped", "Drama", 2000)
	f.addRating(t, kept.ID, 4)
	f.addRating(t, dropped.ID, 1)
	assert.NoError(t, f.titles.SoftDelete(dropped.ID))

	overview, err := f.service.Overview()
	assert.NoError(t, err)
	// Only the kept title's rating qualifies.
	assert.Equal(t, 4.0, overview.GlobalAverage)
	assert.Len(t, overview.TopTitles, 1)
	assert.Equal(t, kept.ID, overview.TopTitles[0].TitleID)
}

func TestOverview_ExcludesInactiveRatings(t *testing.T) {
	f := newStatsFixture()
	title := f.addTitle(t, "Solaris", "Sci-Fi", 1972)
	f.addRating(t, title.ID, 5)
	bad := f.addRating(t, title.ID, 1)
	assert.NoError(t, f.ratings.SoftDelete(bad.ID))

	overview, err := f.service.Overview()
	assert.NoError(t, err)
	assert.Equal(t, 5.0, overview.GlobalAverage)
}

func TestOverview_TopTitlesOrderingAndTieBreak(t *testing.T) {
	f := newStatsFixture()
	first := f.addTitle(t, "First", "Drama", 2000)
	second := f.addTitle(t, "Second", "Drama", 2001)
	third := f.addTitle(t, "Third", "Drama", 2002)
	f.addRating(t, first.ID, 4)
	f.addRating(t, second.ID, 4)
	f.addRating(t, third.ID, 5)

	overview, err := f.service.Overview()
	assert.NoError(t, err)
	assert.Len(t, overview.TopTitles, 3)
	assert.Equal(t, third.ID, overview.TopTitles[0].TitleID)
	// Equal averages fall back to ascending primary key.
	assert.Equal(t, first.ID, overview.TopTitles[1].TitleID)
	assert.Equal(t, second.ID, overview.TopTitles[2].TitleID)
}

func TestOverview_TopTitlesLimitedToFive(t *testing.T) {
	f := newStatsFixture()
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range names {
		title := f.addTitle(t, name, "Drama", 2000+i)
		f.addRating(t, title.ID, float64(i%5)+0.5)
	}

	overview, err := f.service.Overview()
	assert.NoError(t, err)
	assert.Len(t, overview.TopTitles, 5)
}

func TestOverview_TopGenresByRatingsLimitedToFive(t *testing.T) {
	f := newStatsFixture()
	genres := []string{"Drama", "Sci-Fi", "Crime", "Horror", "Comedy", "Western"}
	for i, genre := range genres {
		title := f.addTitle(t, genre+" film", genre, 2000)
		// Earlier genres collect more ratings, so Western ranks last.
		for j := 0; j <= len(genres)-i; j++ {
			f.addRating(t, title.ID, 3)
		}
	}

	overview, err := f.service.Overview()
	assert.NoError(t, err)

	assert.Len(t, overview.TopGenresByRatings, 5)
	for _, gc := range overview.TopGenresByRatings {
		assert.NotEqual(t, "Western", gc.Genre)
	}
	// The full genre distribution is never truncated.
	assert.Len(t, overview.GenreDistribution, 6)
}

func TestOverview_GenreAndYearBreakdowns(t *testing.T) {
	f := newStatsFixture()
	drama1 := f.addTitle(t, "Drama One", "Drama", 1999)
	f.addTitle(t, "Drama Two", "Drama", 1999)
	scifi := f.addTitle(t, "Sci-Fi One", "Sci-Fi", 2020)
	f.addRating(t, drama1.ID, 4)
	f.addRating(t, scifi.ID, 5)
	f.addRating(t, scifi.ID, 3)

	overview, err := f.service.Overview()
	assert.NoError(t, err)

	assert.Equal(t, []services.GenreCount{
		{Genre: "Drama", Count: 2},
		{Genre: "Sci-Fi", Count: 1},
	}, overview.GenreDistribution)

	assert.Equal(t, []services.GenreCount{
		{Genre: "Sci-Fi", Count: 2},
		{Genre: "Drama", Count: 1},
	}, overview.TopGenresByRatings)

	assert.Equal(t, []services.YearCount{
		{Year: 1999, Count: 2},
		{Year: 2020, Count: 1},
	}, overview.TopYears)
}
