package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// --- PG error mapping (pgx) ---

// MapWriteError dipakai setelah INSERT/UPDATE.
func MapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &AppError{Kind: KindConflict, Message: "Data duplikat", Err: err}
		case "23503":
			return &AppError{Kind: KindReferenceNotFound, Message: "Referensi tidak ditemukan", Err: err}
		}
	}
	// driver dengan TranslateError (dipakai di test)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &AppError{Kind: KindConflict, Message: "Data duplikat", Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &AppError{Kind: KindReferenceNotFound, Message: "Referensi tidak ditemukan", Err: err}
	}
	return Unexpected(err)
}

// MapDeleteError: FK violation saat DELETE berarti baris masih dipakai.
func MapDeleteError(err error, inUseMessage string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return &AppError{Kind: KindConflict, Message: inUseMessage, Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &AppError{Kind: KindConflict, Message: inUseMessage, Err: err}
	}
	return MapWriteError(err)
}
