package postgres

import (
	"context"
	"errors"

	"dsmovie/user"

	"gorm.io/gorm"
)

// UserModel represents the database model for users
type UserModel struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Username     string `gorm:"not null;unique"`
	PasswordHash string `gorm:"column:password_hash"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername fetches a user with their granted roles.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	rows, err := r.SearchRolesByUsername(ctx, username)
	if err != nil {
		return user.User{}, err
	}

	u := toDomainUser(model)
	for _, row := range rows {
		if row.Role != "" {
			u.Roles = append(u.Roles, row.Role)
		}
	}
	return u, nil
}

// SearchRolesByUsername returns the user-and-roles projection: one row
// per granted role, zero rows for an unknown username.
func (r *UserRepository) SearchRolesByUsername(ctx context.Context, username string) ([]user.RoleRow, error) {
	const sql = `
SELECT u.username, u.password_hash, COALESCE(r.authority, '') AS role
FROM users u
LEFT JOIN user_roles ur ON ur.user_id = u.id
LEFT JOIN roles r ON r.id = ur.role_id
WHERE u.username = ?
ORDER BY r.id`

	var rows []user.RoleRow
	if err := r.db.WithContext(ctx).Raw(sql, username).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:           model.ID,
		Name:         model.Name,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
	}
}
