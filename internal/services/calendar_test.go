package services_test

import (
	"testing"
	"time"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/internal/services"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandRoutines_SpansMonthBoundary(t *testing.T) {
	routines := []models.Routine{
		{
			ID:        1,
			Name:      "Winter binge",
			StartDate: day(2024, time.January, 30),
			EndDate:   day(2024, time.February, 2),
		},
	}

	days := services.ExpandRoutines(routines)

	assert.Len(t, days, 4)
	for _, key := range []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
		assert.Len(t, days[key], 1, "expected routine in bucket %s", key)
		assert.Equal(t, uint(1), days[key][0].ID)
	}
	assert.Empty(t, days["2024-01-29"])
	assert.Empty(t, days["2024-02-03"])
}

func TestExpandRoutines_OverlappingRoutinesShareDays(t *testing.T) {
	routines := []models.Routine{
		{ID: 1, StartDate: day(2024, time.March, 1), EndDate: day(2024, time.March, 3)},
		{ID: 2, StartDate: day(2024, time.March, 3), EndDate: day(2024, time.March, 4)},
	}

	days := services.ExpandRoutines(routines)

	assert.Len(t, days["2024-03-01"], 1)
	assert.Len(t, days["2024-03-03"], 2)
	assert.Len(t, days["2024-03-04"], 1)
}

func TestExpandRoutines_SingleDayRoutine(t *testing.T) {
	routines := []models.Routine{
		{ID: 7, StartDate: day(2024, time.May, 10), EndDate: day(2024, time.May, 10)},
	}

	days := services.ExpandRoutines(routines)

	assert.Len(t, days, 1)
	assert.Len(t, days["2024-05-10"], 1)
}

func TestMonthGrid_January2024(t *testing.T) {
	// January 2024 starts on a Monday and has 31 days.
	weeks := services.MonthGrid(2024, time.January, time.Monday)

	assert.Len(t, weeks, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, weeks[0])
	assert.Equal(t, []int{29, 30, 31, 0, 0, 0, 0}, weeks[4])
	for _, week := range weeks {
		assert.Len(t, week, 7)
	}
}

func TestMonthGrid_LeapFebruary(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	weeks := services.MonthGrid(2024, time.February, time.Monday)

	assert.Equal(t, []int{0, 0, 0, 1, 2, 3, 4}, weeks[0])
	last := weeks[len(weeks)-1]
	assert.Equal(t, 29, last[3])
}

func TestMonthGrid_SundayStart(t *testing.T) {
	// With a Sunday week start, January 2024's first row begins with a
	// single empty cell before Monday the 1st.
	weeks := services.MonthGrid(2024, time.January, time.Sunday)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, weeks[0])
}

func TestMonthPage_NavigationRollsOverYears(t *testing.T) {
	repo := repositories.NewMemoryRoutineRepository()
	service := services.NewCalendarService(repo, time.Monday)

	dec, err := service.MonthPage(2024, 12)
	assert.NoError(t, err)
	assert.Equal(t, 2025, dec.NextYear)
	assert.Equal(t, 1, dec.NextMonth)
	assert.Equal(t, 2024, dec.PrevYear)
	assert.Equal(t, 11, dec.PrevMonth)
	assert.Equal(t, "December 2024", dec.MonthName)

	jan, err := service.MonthPage(2025, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2024, jan.PrevYear)
	assert.Equal(t, 12, jan.PrevMonth)
	assert.Equal(t, 2025, jan.NextYear)
	assert.Equal(t, 2, jan.NextMonth)
}

func TestMonthPage_InvalidMonthFallsBackToCurrent(t *testing.T) {
	repo := repositories.NewMemoryRoutineRepository()
	service := services.NewCalendarService(repo, time.Monday)

	now := time.Now()
	page, err := service.MonthPage(2024, 13)
	assert.NoError(t, err)
	assert.Equal(t, now.Year(), page.Year)
	assert.Equal(t, int(now.Month()), page.Month)
	assert.Equal(t, now.Day(), page.Today)
}

func TestMonthPage_IncludesRoutineBucketsAcrossMonths(t *testing.T) {
	repo := repositories.NewMemoryRoutineRepository()
	routine := &models.Routine{
		Name:       "Cross-month marathon",
		StartDate:  day(2024, time.January, 30),
		EndDate:    day(2024, time.February, 2),
		UserID:     1,
		TitleID:    1,
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	assert.NoError(t, repo.Create(routine))

	service := services.NewCalendarService(repo, time.Monday)

	// The buckets carry the full span no matter which month is shown.
	for _, ym := range [][2]int{{2024, 1}, {2024, 2}} {
		page, err := service.MonthPage(ym[0], ym[1])
		assert.NoError(t, err)
		for _, key := range []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
			assert.Len(t, page.Days[key], 1)
		}
	}
}

func TestMonthPage_SkipsInactiveRoutines(t *testing.T) {
	repo := repositories.NewMemoryRoutineRepository()
	routine := &models.Routine{
		Name:       "Cancelled plan",
		StartDate:  day(2024, time.June, 1),
		EndDate:    day(2024, time.June, 3),
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	assert.NoError(t, repo.Create(routine))
	assert.NoError(t, repo.SoftDelete(routine.ID))

	service := services.NewCalendarService(repo, time.Monday)
	page, err := service.MonthPage(2024, 6)
	assert.NoError(t, err)
	assert.Empty(t, page.Days)
}
