package postgres

import (
	"dsmovie/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreModel represents the database model for scores. The composite
// primary key (movie_id, user_id) is what makes a re-submission an
// overwrite instead of a second row.
type ScoreModel struct {
	MovieID int64   `gorm:"primaryKey;autoIncrement:false"`
	UserID  int64   `gorm:"primaryKey;autoIncrement:false"`
	Value   float64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ScoreModel) TableName() string {
	return "scores"
}

// upsertScore inserts or overwrites one score row by its composite key.
func upsertScore(tx *gorm.DB, s ScoreModel) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
}

func toDomainScore(s ScoreModel) movie.Score {
	return movie.Score{
		MovieID: s.MovieID,
		UserID:  s.UserID,
		Value:   s.Value,
	}
}

func toModelScore(s movie.Score) ScoreModel {
	return ScoreModel{
		MovieID: s.MovieID,
		UserID:  s.UserID,
		Value:   s.Value,
	}
}
