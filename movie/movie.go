package movie

import "dsmovie/errs"

var (
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "movie: movie not found")
	ErrMovieReferenced = errs.Errorf(errs.ECONFLICT, "movie: referential integrity failure")
	ErrInvalidTitle    = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrInvalidScore    = errs.Errorf(errs.EINVALID, "movie: score value out of range")
)

// Score value bounds accepted from clients.
const (
	MinScoreValue = 0
	MaxScoreValue = 10
)

// Score is one user's rating of one movie. The (MovieID, UserID) pair is
// the identity: re-submitting replaces the previous value, it never adds
// a second row.
type Score struct {
	MovieID int64
	UserID  int64
	Value   float64
}

func (s Score) Validate() error {
	if s.Value < MinScoreValue || s.Value > MaxScoreValue {
		return ErrInvalidScore
	}
	return nil
}

// Movie is the rated aggregate. Count and Score are derived from Scores
// and must be recomputed whenever the score set changes; they are stored
// so listings do not have to touch the scores table.
type Movie struct {
	ID     int64
	Title  string
	Year   int
	Image  string
	Count  int
	Score  float64
	Scores []Score
}

func (m Movie) Validate() error {
	if m.Title == "" {
		return ErrInvalidTitle
	}
	return nil
}

// RateBy upserts userID's score and recomputes Count and the average
// Score from the resulting set. It returns the score row that has to be
// persisted.
func (m *Movie) RateBy(userID int64, value float64) Score {
	s := Score{MovieID: m.ID, UserID: userID, Value: value}

	replaced := false
	for i := range m.Scores {
		if m.Scores[i].UserID == userID {
			m.Scores[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		m.Scores = append(m.Scores, s)
	}

	m.recompute()
	return s
}

func (m *Movie) recompute() {
	m.Count = len(m.Scores)
	if m.Count == 0 {
		m.Score = 0
		return
	}

	var sum float64
	for _, s := range m.Scores {
		sum += s.Value
	}
	m.Score = sum / float64(m.Count)
}

// PageRequest selects one page of a title search.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Page is one page of search results plus paging metadata.
type Page struct {
	Content       []Movie
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}
