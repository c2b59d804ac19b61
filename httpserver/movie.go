package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"dsmovie/errs"
	"dsmovie/movie"
	"dsmovie/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)

	admin := g.Group("/movies", s.jwtMiddleware(), s.requireRole(user.RoleAdmin))
	admin.POST("", s.handleCreateMovie)
	admin.PUT("/:id", s.handleUpdateMovie)
	admin.DELETE("/:id", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Paged title search; an empty title matches all movies
// @Tags movies
// @Produce json
// @Param title query string false "Title filter"
// @Param page query int false "Page index, default 0"
// @Param size query int false "Page size (1-100), default 12"
// @Param sort query string false "Sort key: id, title, year or score"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	title := strings.TrimSpace(c.QueryParam("title"))

	page := movie.PageRequest{Size: 12, Sort: c.QueryParam("sort")}
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return errs.Errorf(errs.EINVALID, "invalid page index")
		}
		page.Page = parsed
	}
	if raw := strings.TrimSpace(c.QueryParam("size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return errs.Errorf(errs.EINVALID, "invalid page size")
		}
		page.Size = parsed
	}

	result, err := s.MovieService.FindAll(c.Request().Context(), title, page)
	if err != nil {
		return err
	}

	data := make([]MovieResponse, len(result.Content))
	for i, m := range result.Content {
		data[i] = toMovieResponse(m)
	}
	return writePagedList(c, http.StatusOK, data, result.Page, result.Size, result.TotalElements)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Fetch one movie with its aggregate score
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, toMovieResponse(m))
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Insert a new movie (admin only)
// @Tags movies
// @Accept json
// @Produce json
// @Param payload body MovieRequest true "Movie payload"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.Insert(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, toMovieResponse(m))
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Overwrite a movie's mutable fields (admin only)
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie id"
// @Param payload body MovieRequest true "Movie payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.Update(c.Request().Context(), id, req.ToMovie())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, toMovieResponse(m))
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Delete a movie by id (admin only)
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 204 "No Content"
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Errorf(errs.EINVALID, "invalid movie id")
	}
	return id, nil
}
