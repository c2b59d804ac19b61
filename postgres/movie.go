package postgres

import (
	"context"
	"errors"

	"dsmovie/movie"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies. ScoreCount and
// AvgScore are denormalized aggregates, rewritten together with the
// score set in SaveWithScore.
type MovieModel struct {
	ID          int64   `gorm:"primaryKey"`
	Title       string  `gorm:"not null"`
	ReleaseYear int     `gorm:"column:release_year;not null"`
	Image       string  `gorm:"not null;default:''"`
	ScoreCount  int     `gorm:"column:score_count;not null;default:0"`
	AvgScore    float64 `gorm:"column:avg_score;not null;default:0"`

	Scores []ScoreModel `gorm:"foreignKey:MovieID"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository and the persistence slice
// consumed by the score usecase.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const maxPageSize = 100

// SearchByTitle pages through movies whose title contains the filter,
// case-insensitively. An empty filter matches all movies.
func (r *MovieRepository) SearchByTitle(ctx context.Context, title string, page movie.PageRequest) (movie.Page, error) {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = 12
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}

	q := r.db.WithContext(ctx).Model(&MovieModel{})
	if title != "" {
		q = q.Where("title ILIKE ?", "%"+title+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return movie.Page{}, err
	}

	var models []MovieModel
	err := q.Order(orderClause(page.Sort)).
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return movie.Page{}, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return movie.Page{
		Content:       movies,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// orderClause whitelists sortable columns; anything unknown falls back
// to the primary key so user input never reaches the ORDER BY raw.
func orderClause(sort string) string {
	switch sort {
	case "title":
		return "title, id"
	case "year":
		return "release_year, id"
	case "score":
		return "avg_score DESC, id"
	default:
		return "id"
	}
}

// GetByID fetches a movie with its full score set.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel

	err := r.db.WithContext(ctx).Preload("Scores").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	return toDomainMovie(model), nil
}

func (r *MovieRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or fully overwrites a movie row. The score association is
// never written here; SaveWithScore owns that path.
func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&model).Error; err != nil {
		return movie.Movie{}, err
	}

	m.ID = model.ID
	return m, nil
}

// SaveWithScore upserts one score row and writes the movie's aggregate
// fields in the same transaction, keeping average and count consistent
// with the persisted score set even under concurrent submissions.
func (r *MovieRepository) SaveWithScore(ctx context.Context, m movie.Movie, s movie.Score) (movie.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertScore(tx, toModelScore(s)); err != nil {
			return err
		}

		result := tx.Model(&MovieModel{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
			"score_count": m.Count,
			"avg_score":   m.Score,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return movie.ErrMovieNotFound
		}
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return m, nil
}

// Delete removes a movie by id. Dependent rows outside the score set
// (which cascades) block the delete and surface as ErrMovieReferenced.
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return movie.ErrMovieReferenced
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	m := movie.Movie{
		ID:    model.ID,
		Title: model.Title,
		Year:  model.ReleaseYear,
		Image: model.Image,
		Count: model.ScoreCount,
		Score: model.AvgScore,
	}
	for _, s := range model.Scores {
		m.Scores = append(m.Scores, toDomainScore(s))
	}
	return m
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.Year,
		Image:       m.Image,
		ScoreCount:  m.Count,
		AvgScore:    m.Score,
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
