package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domain"
	authsvc "library-backend/internal/service/auth"
)

// unhandledMessage hides storage-level detail from callers.
const unhandledMessage = "unhandled error occurred"

// envelope is the uniform response shape: ok plus either data or error,
// never both.
type envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data"`
	Error *string     `json:"error"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{OK: true, Data: data})
}

func respondError(c *gin.Context, err error) {
	msg := err.Error()
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, authsvc.ErrInvalidCredentials), errors.Is(err, authsvc.ErrInvalidToken):
		status = http.StatusUnauthorized
	default:
		msg = unhandledMessage
	}
	c.JSON(status, envelope{OK: false, Error: &msg})
}

// bindStrict decodes a JSON body rejecting unknown fields, so a request
// carrying an unrecognized key fails as a whole instead of silently dropping
// the field.
func bindStrict(c *gin.Context, out interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return domain.ErrInvalidRequest
	}
	// Trailing garbage after the JSON document is rejected as well.
	if dec.More() {
		return domain.ErrInvalidRequest
	}
	return nil
}
