package movie_test

import (
	"testing"

	"dsmovie/movie"

	"github.com/stretchr/testify/assert"
)

func TestMovie_RateBy(t *testing.T) {
	t.Run("first score sets average and count", func(t *testing.T) {
		m := movie.Movie{ID: 1, Title: "The Witcher"}

		s := m.RateBy(10, 8)

		assert.Equal(t, movie.Score{MovieID: 1, UserID: 10, Value: 8}, s)
		assert.Equal(t, 1, m.Count)
		assert.Equal(t, 8.0, m.Score)
	})

	t.Run("scores from distinct users are averaged", func(t *testing.T) {
		m := movie.Movie{ID: 1, Title: "The Witcher"}

		m.RateBy(10, 8)
		m.RateBy(20, 4)

		assert.Equal(t, 2, m.Count)
		assert.Equal(t, 6.0, m.Score)
	})

	t.Run("re-submission replaces the previous value", func(t *testing.T) {
		m := movie.Movie{ID: 1, Title: "The Witcher"}

		m.RateBy(10, 8)
		m.RateBy(20, 4)
		m.RateBy(10, 10)

		assert.Equal(t, 2, m.Count, "count must not grow on re-submission")
		assert.Equal(t, 7.0, m.Score, "average must be over latest values {10, 4}")
		assert.Len(t, m.Scores, 2)
	})

	t.Run("repeated identical submissions leave one score", func(t *testing.T) {
		m := movie.Movie{ID: 1, Title: "The Witcher"}

		m.RateBy(10, 3)
		m.RateBy(10, 3)
		m.RateBy(10, 3)

		assert.Equal(t, 1, m.Count)
		assert.Equal(t, 3.0, m.Score)
		assert.Len(t, m.Scores, 1)
	})
}

func TestScore_Validate(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		err   error
	}{
		{name: "lower bound", value: 0, err: nil},
		{name: "upper bound", value: 10, err: nil},
		{name: "mid range", value: 4.5, err: nil},
		{name: "below range", value: -0.5, err: movie.ErrInvalidScore},
		{name: "above range", value: 10.5, err: movie.ErrInvalidScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := movie.Score{MovieID: 1, UserID: 1, Value: tt.value}
			assert.Equal(t, tt.err, s.Validate())
		})
	}
}

func TestMovie_Validate(t *testing.T) {
	assert.NoError(t, movie.Movie{Title: "Alien"}.Validate())
	assert.Equal(t, movie.ErrInvalidTitle, movie.Movie{}.Validate())
}
