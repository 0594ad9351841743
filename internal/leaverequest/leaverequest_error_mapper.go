package leaverequest

import (
	"errors"
	"strings"

	leaverequesterrors "go-attendance/internal/leaverequest/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaverequesterrors.ErrLeaveRequestNotFound
	}

	return err
}

// isIDCollision reports whether the insert failed on the primary key, which
// with random IDs means the generated value is already taken and the insert
// should be retried with a fresh one.
func isIDCollision(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "pkey")
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "pkey")
}
