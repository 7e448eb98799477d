package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusNoPermission           = http.StatusForbidden
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrStatusConflict               = http.StatusConflict
	ErrBadGateway                   = http.StatusBadGateway
)

var (
	ErrInternalServer         = errors.New("Internal server error")
	ErrClient                 = errors.New("Bad request")
	ErrNotLoggedIn            = errors.New("Unauthorized access")
	ErrInvalidCredentials     = errors.New("Username or password is incorrect")
	ErrUnauthorized           = errors.New("Forbidden access")
	ErrNotFound               = errors.New("Resource not found")
	ErrNotAnImage             = errors.New("Uploaded file is not an allowed image type")
	ErrTooManyFiles           = errors.New("Too many files uploaded")
	ErrDuplicateName          = errors.New("Duplicate name found")
	ErrStorage                = errors.New("Object storage is unavailable")
	ErrFileSizeExceedingLimit = errors.New("Uploaded file is too large")
)

var errorMap = map[error]int{
	ErrInternalServer:         ErrStatusInternalServer,
	ErrClient:                 ErrStatusClient,
	ErrNotLoggedIn:            ErrStatusNotLoggedIn,
	ErrInvalidCredentials:     ErrStatusNotLoggedIn,
	ErrUnauthorized:           ErrStatusNoPermission,
	ErrNotFound:               ErrStatusNotFound,
	ErrNotAnImage:             ErrStatusClient,
	ErrTooManyFiles:           ErrStatusClient,
	ErrDuplicateName:          ErrStatusConflict,
	ErrStorage:                ErrBadGateway,
	ErrFileSizeExceedingLimit: ErrStatusFileSizeExceedingLimit,
}

// GetErrorStatusCode resolves the HTTP status for err, following wrapped
// errors. Unknown errors map to 500.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for known, errStatusCode := range errorMap {
		if errors.Is(err, known) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

// Known returns the sentinel error wrapped by err.
func Known(err error) (error, bool) {
	if _, ok := errorMap[err]; ok {
		return err, true
	}

	for known := range errorMap {
		if errors.Is(err, known) {
			return known, true
		}
	}

	return nil, false
}
