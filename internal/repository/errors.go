package repository

import (
	"database/sql/driver"
	"errors"
	"net"

	"taskboard/internal/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Common repository errors
var (
	ErrBoardNotFound  = apperror.NotFound("board not found")
	ErrColumnNotFound = apperror.NotFound("column not found")
	ErrCardNotFound   = apperror.NotFound("card not found")

	// ErrCardNotInSource is returned when a move names a source column the card is no longer in
	ErrCardNotInSource = apperror.Conflict("card is not in the given source column")

	// ErrCardMoved is returned when another request moved the card while this one waited for its column
	ErrCardMoved = apperror.Conflict("card was moved by another request, retry")
)

// storeError converts a gorm or driver error from a single-statement read.
func storeError(op string, err error, notFound error) error {
	var appErr *apperror.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case unavailable(err):
		return apperror.StoreUnavailable(err)
	default:
		return apperror.Internal(op, err)
	}
}

func unavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	return errors.Is(err, driver.ErrBadConn) ||
		errors.As(err, &connectErr) ||
		errors.As(err, &netErr)
}
