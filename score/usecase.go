// Package score records authenticated users' ratings and keeps the rated
// movie's aggregate consistent with its score set.
package score

import (
	"context"

	"dsmovie/movie"
	"dsmovie/user"
)

// Input is a rating submission for a movie by the acting user.
type Input struct {
	MovieID int64
	Value   float64
}

type Service interface {
	SaveScore(ctx context.Context, in Input) (movie.Movie, error)
}

// MovieRepository is the persistence slice this usecase needs.
// SaveWithScore must upsert the score and write the movie's aggregate
// fields inside a single transaction, so concurrent submissions cannot
// leave the stored average out of step with the stored score set.
type MovieRepository interface {
	GetByID(ctx context.Context, id int64) (movie.Movie, error)
	SaveWithScore(ctx context.Context, m movie.Movie, s movie.Score) (movie.Movie, error)
}

// UserService resolves the acting principal.
type UserService interface {
	Authenticated(ctx context.Context) (user.User, error)
}

type Usecase struct {
	movies MovieRepository
	users  UserService
}

func NewUsecase(movies MovieRepository, users UserService) *Usecase {
	return &Usecase{movies: movies, users: users}
}

// SaveScore upserts the acting user's rating for a movie and recomputes
// the movie's average and count from the full score set before anything
// is persisted. Authentication failures propagate unchanged; an unknown
// movie id fails with movie.ErrMovieNotFound.
func (uc *Usecase) SaveScore(ctx context.Context, in Input) (movie.Movie, error) {
	s := movie.Score{MovieID: in.MovieID, Value: in.Value}
	if err := s.Validate(); err != nil {
		return movie.Movie{}, err
	}

	u, err := uc.users.Authenticated(ctx)
	if err != nil {
		return movie.Movie{}, err
	}

	m, err := uc.movies.GetByID(ctx, in.MovieID)
	if err != nil {
		return movie.Movie{}, err
	}

	saved := m.RateBy(u.ID, in.Value)
	return uc.movies.SaveWithScore(ctx, m, saved)
}
