package services

import (
	"time"

	"cinehub/internal/models"
	"cinehub/internal/repositories"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// MonthPage is everything the calendar view needs for one month: the week
// grid, the per-day routine buckets, display labels and navigation targets.
type MonthPage struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	// Today is the current day of month when the page shows the current
	// month, 0 otherwise.
	Today int     `json:"today"`
	Weeks [][]int `json:"weeks"`
	// Days maps YYYY-MM-DD to the routines active that day. Keys outside
	// the displayed month are kept so spans crossing month borders stay
	// visible when navigating.
	Days      map[string][]models.Routine `json:"days"`
	PrevYear  int                         `json:"prev_year"`
	PrevMonth int                         `json:"prev_month"`
	NextYear  int                         `json:"next_year"`
	NextMonth int                         `json:"next_month"`
}

// CalendarService builds month pages from active routines.
type CalendarService struct {
	routines  repositories.RoutineRepository
	weekStart time.Weekday
}

// NewCalendarService creates a new CalendarService. weekStart fixes the
// first column of the grid.
func NewCalendarService(routines repositories.RoutineRepository, weekStart time.Weekday) *CalendarService {
	return &CalendarService{
		routines:  routines,
		weekStart: weekStart,
	}
}

// dateOnly strips the time-of-day so range walks count whole days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpandRoutines materializes every routine's inclusive [start, end] range
// into per-day buckets keyed YYYY-MM-DD. A day holds every routine that
// overlaps it. Spans are short business data, so the walk is direct.
func ExpandRoutines(routines []models.Routine) map[string][]models.Routine {
	days := make(map[string][]models.Routine)
	for _, r := range routines {
		cursor := dateOnly(r.StartDate)
		end := dateOnly(r.EndDate)
		for !cursor.After(end) {
			key := cursor.Format(DateLayout)
			days[key] = append(days[key], r)
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return days
}

// MonthGrid lays the month out as weeks of seven day-numbers, starting each
// week on weekStart. Cells outside the month hold 0.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var weeks [][]int
	week := make([]int, 7)
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// MonthPage assembles the calendar page for the requested year and month.
// An invalid request falls back to the current month. Previous and next
// months are derived from the first-of-month date, so the December/January
// rollover carries the year with it.
func (s *CalendarService) MonthPage(year, month int) (*MonthPage, error) {
	now := time.Now()
	if year < 1 || month < 1 || month > 12 {
		year = now.Year()
		month = int(now.Month())
	}

	routines, err := s.routines.ListActive()
	if err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, 0, -1)
	next := first.AddDate(0, 1, 0)

	today := 0
	if now.Year() == year && int(now.Month()) == month {
		today = now.Day()
	}

	return &MonthPage{
		Year:      year,
		Month:     month,
		MonthName: first.Format("January 2006"),
		Today:     today,
		Weeks:     MonthGrid(year, time.Month(month), s.weekStart),
		Days:      ExpandRoutines(routines),
		PrevYear:  prev.Year(),
		PrevMonth: int(prev.Month()),
		NextYear:  next.Year(),
		NextMonth: int(next.Month()),
	}, nil
}
