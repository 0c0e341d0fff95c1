package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"yatube/app/apperrors"
)

var (
	ErrNotFound         = &apperrors.CustomError{Err: apperrors.ErrResourceNotFound, Message: "record not found"}
	ErrAlreadyFollowing = errors.New("already following")
	ErrFollowNotFound   = errors.New("follow relationship not found")
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err comes from a unique index or primary
// key rejecting a write.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsCheckViolation reports whether err comes from a CHECK constraint.
func IsCheckViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation
}

// IsForeignKeyViolation reports whether err comes from a missing referenced
// row.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// notFound maps gorm's sentinel onto the repository one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// PostFilter narrows a post listing to one feed context. Zero fields are
// ignored; an empty filter selects every post.
type PostFilter struct {
	GroupID    uint
	AuthorID   uint
	FollowerID uint
}

func (f PostFilter) apply(db *gorm.DB) *gorm.DB {
	if f.GroupID != 0 {
		db = db.Where("posts.group_id = ?", f.GroupID)
	}
	if f.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.FollowerID != 0 {
		db = db.Where("posts.author_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("follows").
				Select("author_id").
				Where("user_id = ?", f.FollowerID))
	}
	return db
}
