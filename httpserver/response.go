package httpserver

import (
	"fmt"
	"strconv"

	"dsmovie/errs"
	"dsmovie/movie"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
)

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

type MovieResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Year  int     `json:"year"`
	Image string  `json:"image,omitempty"`
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

func toMovieResponse(m movie.Movie) MovieResponse {
	return MovieResponse{
		ID:    m.ID,
		Title: m.Title,
		Year:  m.Year,
		Image: m.Image,
		Count: m.Count,
		Score: m.Score,
	}
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writePagedList(c echo.Context, status int, data interface{}, page, limit int, total int64) error {
	return writeSuccess(c, status, map[string]interface{}{
		"data":  data,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

func errorCode(err error, status int) string {
	if _, ok := err.(*errs.Error); ok {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
