package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BusinessError is a user-visible failure raised by the core. It carries
// the HTTP status it maps to so handlers never re-interpret codes.
type BusinessError struct {
	Status  int
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBadRequest(code, message string) error {
	return BusinessError{Status: http.StatusBadRequest, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Status: http.StatusNotFound, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Status: http.StatusForbidden, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Status: http.StatusConflict, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Respond writes err to the client: business errors keep their status,
// code and message; anything else becomes an opaque 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, be.Status, be.Code, be.Message)
		return
	}

	log.Printf("internal error: %v", err)
	Internal(c, "internal_error", "An unexpected error occurred.")
}
