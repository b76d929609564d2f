package helper

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindMissingField        ErrorKind = "MISSING_FIELD"
	KindInvalidFormat       ErrorKind = "INVALID_FORMAT"
	KindReferenceNotFound   ErrorKind = "REFERENCE_NOT_FOUND"
	KindInvalidCredentials  ErrorKind = "INVALID_CREDENTIALS"
	KindTokenExpired        ErrorKind = "TOKEN_EXPIRED"
	KindTokenInvalid        ErrorKind = "TOKEN_INVALID"
	KindMalformedToken      ErrorKind = "MISSING_OR_MALFORMED_TOKEN"
	KindAccountNotFound     ErrorKind = "ACCOUNT_NOT_FOUND"
	KindForbidden           ErrorKind = "FORBIDDEN"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindConflict            ErrorKind = "CONFLICT"
	KindUnsupportedFileType ErrorKind = "UNSUPPORTED_FILE_TYPE"
	KindFileTooLarge        ErrorKind = "FILE_TOO_LARGE"
	KindUnexpected          ErrorKind = "UNEXPECTED"
)

const MsgUnexpected = "Terjadi kesalahan pada server"

var kindStatus = map[ErrorKind]int{
	KindMissingField:        fiber.StatusBadRequest,
	KindInvalidFormat:       fiber.StatusBadRequest,
	KindReferenceNotFound:   fiber.StatusBadRequest,
	KindInvalidCredentials:  fiber.StatusUnauthorized,
	KindTokenExpired:        fiber.StatusUnauthorized,
	KindTokenInvalid:        fiber.StatusUnauthorized,
	KindMalformedToken:      fiber.StatusUnauthorized,
	KindAccountNotFound:     fiber.StatusUnauthorized,
	KindForbidden:           fiber.StatusForbidden,
	KindNotFound:            fiber.StatusNotFound,
	KindConflict:            fiber.StatusConflict,
	KindUnsupportedFileType: fiber.StatusBadRequest,
	KindFileTooLarge:        fiber.StatusBadRequest,
	KindUnexpected:          fiber.StatusInternalServerError,
}

// AppError membawa jenis kegagalan, pesan untuk klien, dan (opsional) error asal.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	if s, ok := kindStatus[e.Kind]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func fieldError(kind ErrorKind, field, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Fields: map[string][]string{field: {message}}}
}

func MissingField(field, message string) *AppError {
	return fieldError(KindMissingField, field, message)
}

func InvalidFormat(field, message string) *AppError {
	return fieldError(KindInvalidFormat, field, message)
}

func ReferenceNotFound(field, message string) *AppError {
	return fieldError(KindReferenceNotFound, field, message)
}

func NotFound(message string) *AppError { return NewAppError(KindNotFound, message) }

func Conflict(message string) *AppError { return NewAppError(KindConflict, message) }

func Forbidden(message string) *AppError { return NewAppError(KindForbidden, message) }

// Unexpected membungkus error infrastruktur; pesan ke klien selalu generik.
func Unexpected(err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: MsgUnexpected, Err: err}
}

// KindOf mengembalikan jenis error, atau KindUnexpected untuk error lain.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}

func missingMessage(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ") + " wajib diisi"
}
