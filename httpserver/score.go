package httpserver

import (
	"net/http"

	"dsmovie/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterScoreRoutes(g *echo.Group) {
	g.PUT("/scores", s.handleSaveScore, s.jwtMiddleware())
}

// handleSaveScore godoc
// @Summary Save Score
// @Description Record the authenticated user's rating for a movie and return the updated movie
// @Tags scores
// @Accept json
// @Produce json
// @Param payload body SaveScoreRequest true "Score payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/scores [put]
func (s *Server) handleSaveScore(c echo.Context) error {
	var req SaveScoreRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.ScoreService.SaveScore(c.Request().Context(), req.ToInput())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, toMovieResponse(m))
}
