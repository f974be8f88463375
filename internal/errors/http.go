package errors

import "net/http"

// HTTPStatus maps a typed error onto a response status and error code.
// Anything untyped is an internal error.
func HTTPStatus(err error) (int, string) {
	if _, ok := IsValidationError(err); ok {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}
	if _, ok := IsUnauthorizedError(err); ok {
		return http.StatusUnauthorized, "UNAUTHORIZED"
	}
	if _, ok := IsForbiddenError(err); ok {
		return http.StatusForbidden, "FORBIDDEN"
	}
	if _, ok := IsNotFoundError(err); ok {
		return http.StatusNotFound, "NOT_FOUND"
	}
	if _, ok := IsConflictError(err); ok {
		return http.StatusConflict, "CONFLICT"
	}
	if _, ok := IsDeadlockError(err); ok {
		return http.StatusConflict, "DEADLOCK"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
