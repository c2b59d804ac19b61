package httpserver

import (
	"dsmovie/movie"
	"dsmovie/score"
)

type MovieRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
	Year  int    `json:"year" validate:"omitempty,gte=1888,lte=2100"`
	Image string `json:"image" validate:"omitempty,url,max=500"`
}

func (r MovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title: r.Title,
		Year:  r.Year,
		Image: r.Image,
	}
}

type SaveScoreRequest struct {
	MovieID int64   `json:"movieId" validate:"required,gt=0"`
	Score   float64 `json:"score" validate:"gte=0,lte=10"`
}

func (r SaveScoreRequest) ToInput() score.Input {
	return score.Input{
		MovieID: r.MovieID,
		Value:   r.Score,
	}
}
