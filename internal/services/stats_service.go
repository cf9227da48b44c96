package services

import (
	"math"
	"sort"

	"cinehub/internal/repositories"
)

// topN is the fixed size of every top list in the overview.
const topN = 5

// RoundScore rounds an average to one decimal place, half away from zero.
// Rounding happens in application code so no database-specific rounding
// function is involved.
func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// TitleAverage is one row of the top-rated listing.
type TitleAverage struct {
	TitleID uint    `json:"title_id"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// GenreCount pairs a genre with a count (of titles or of ratings).
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// YearCount pairs a release year with its active-title count.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Overview is the read-only statistics rollup over active rows.
type Overview struct {
	UserCount    int `json:"user_count"`
	TitleCount   int `json:"title_count"`
	RatingCount  int `json:"rating_count"`
	RoutineCount int `json:"routine_count"`
	// GlobalAverage is 0.0 when no qualifying rating exists.
	GlobalAverage      float64        `json:"global_average"`
	TopTitles          []TitleAverage `json:"top_titles"`
	GenreDistribution  []GenreCount   `json:"genre_distribution"`
	TopGenresByRatings []GenreCount   `json:"top_genres_by_ratings"`
	TopYears           []YearCount    `json:"top_years"`
}

// StatsService computes rating aggregates and the statistics overview.
// Averages count only active ratings whose title is also active.
type StatsService struct {
	users    repositories.UserRepository
	titles   repositories.TitleRepository
	ratings  repositories.RatingRepository
	routines repositories.RoutineRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(users repositories.UserRepository, titles repositories.TitleRepository, ratings repositories.RatingRepository, routines repositories.RoutineRepository) *StatsService {
	return &StatsService{
		users:    users,
		titles:   titles,
		ratings:  ratings,
		routines: routines,
	}
}

// AverageForTitle returns the rounded mean score of one active title's
// active ratings, 0.0 when it has none.
func (s *StatsService) AverageForTitle(titleID uint) (float64, error) {
	if _, err := s.titles.GetByID(titleID); err != nil {
		return 0, err
	}
	ratings, err := s.ratings.ListActiveByTitle(titleID)
	if err != nil {
		return 0, err
	}
	if len(ratings) == 0 {
		return 0.0, nil
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Score
	}
	return RoundScore(sum / float64(len(ratings))), nil
}

// Overview assembles the full statistics report.
func (s *StatsService) Overview() (*Overview, error) {
	users, err := s.users.ListActive()
	if err != nil {
		return nil, err
	}
	titles, err := s.titles.ListActive()
	if err != nil {
		return nil, err
	}
	allRatings, err := s.ratings.ListActive()
	if err != nil {
		return nil, err
	}
	routines, err := s.routines.ListActive()
	if err != nil {
		return nil, err
	}
	qualifying, err := s.ratings.ListActiveWithActiveTitle()
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		UserCount:    len(users),
		TitleCount:   len(titles),
		RatingCount:  len(allRatings),
		RoutineCount: len(routines),
	}

	// Global average over qualifying ratings, 0.0 when there are none.
	var globalSum float64
	for _, r := range qualifying {
		globalSum += r.Score
	}
	if len(qualifying) > 0 {
		overview.GlobalAverage = RoundScore(globalSum / float64(len(qualifying)))
	}

	// Per-title sums. Titles without qualifying ratings never enter the
	// top listing.
	type acc struct {
		sum   float64
		count int
	}
	byTitle := make(map[uint]*acc)
	for _, r := range qualifying {
		a := byTitle[r.TitleID]
		if a == nil {
			a = &acc{}
			byTitle[r.TitleID] = a
		}
		a.sum += r.Score
		a.count++
	}

	titleNames := make(map[uint]string, len(titles))
	genreByTitle := make(map[uint]string, len(titles))
	for _, t := range titles {
		titleNames[t.ID] = t.Name
		genreByTitle[t.ID] = t.Genre
	}

	topTitles := make([]TitleAverage, 0, len(byTitle))
	for id, a := range byTitle {
		topTitles = append(topTitles, TitleAverage{
			TitleID: id,
			Title:   titleNames[id],
			Average: a.sum / float64(a.count),
			Count:   a.count,
		})
	}
	// Descending by average; ties resolved by ascending primary key so the
	// ordering is deterministic.
	sort.Slice(topTitles, func(i, j int) bool {
		if topTitles[i].Average != topTitles[j].Average {
			return topTitles[i].Average > topTitles[j].Average
		}
		return topTitles[i].TitleID < topTitles[j].TitleID
	})
	if len(topTitles) > topN {
		topTitles = topTitles[:topN]
	}
	for i := range topTitles {
		topTitles[i].Average = RoundScore(topTitles[i].Average)
	}
	overview.TopTitles = topTitles

	// Genre distribution across all active titles.
	genreTitles := make(map[string]int)
	for _, t := range titles {
		genreTitles[t.Genre]++
	}
	overview.GenreDistribution = sortedGenreCounts(genreTitles, 0)

	// Genres ranked by how many qualifying ratings their titles received.
	genreRatings := make(map[string]int)
	for _, r := range qualifying {
		genreRatings[genreByTitle[r.TitleID]]++
	}
	overview.TopGenresByRatings = sortedGenreCounts(genreRatings, topN)

	// Release years ranked by active-title count.
	yearTitles := make(map[int]int)
	for _, t := range titles {
		yearTitles[t.ReleaseYear]++
	}
	years := make([]YearCount, 0, len(yearTitles))
	for year, count := range yearTitles {
		years = append(years, YearCount{Year: year, Count: count})
	}
	sort.Slice(years, func(i, j int) bool {
		if years[i].Count != years[j].Count {
			return years[i].Count > years[j].Count
		}
		return years[i].Year < years[j].Year
	})
	if len(years) > topN {
		years = years[:topN]
	}
	overview.TopYears = years

	return overview, nil
}

// sortedGenreCounts orders genres by descending count, ties alphabetically,
// truncating to limit when limit is positive.
func sortedGenreCounts(counts map[string]int, limit int) []GenreCount {
	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
