package graphql

import (
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/interfaces/errcode"
)

// gqlError error de resolver con extensions.code (y extensions.fields en validación).
type gqlError struct {
	code    string
	message string
	fields  []domain.FieldError
	cause   error
}

func (e *gqlError) Error() string { return e.message }

func (e *gqlError) Unwrap() error { return e.cause }

// Extensions lo lee graphql-go para poblar errors[].extensions.
func (e *gqlError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.fields) > 0 {
		ext["fields"] = e.fields
	}
	return ext
}

func newError(err error) *gqlError {
	cl := errcode.Classify(err)
	return &gqlError{code: cl.Code, message: cl.Message, fields: cl.Fields, cause: err}
}
