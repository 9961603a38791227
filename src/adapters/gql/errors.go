package gql

import (
	"errors"
	"net/http"
	"strings"

	"storeadmin/src/domain"
)

// resolverError carrega code/statusCode em extensions.
type resolverError struct {
	message    string
	code       string
	statusCode int
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":       e.code,
		"statusCode": e.statusCode,
	}
}

func (b *schemaBuilder) toGraphQLError(err error) error {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return &resolverError{
			message:    strings.Join(validationErr.Issues, "; "),
			code:       "BAD_USER_INPUT",
			statusCode: http.StatusBadRequest,
		}
	case errors.As(err, &notFoundErr):
		return &resolverError{message: notFoundErr.Error(), code: "NOT_FOUND", statusCode: http.StatusNotFound}
	case errors.Is(err, domain.ErrNotFound):
		return &resolverError{message: domain.ErrNotFound.Error(), code: "NOT_FOUND", statusCode: http.StatusNotFound}
	case errors.Is(err, domain.ErrConflict):
		return &resolverError{message: domain.ErrConflict.Error(), code: "CONFLICT", statusCode: http.StatusConflict}
	}

	b.logger.Error("GraphQL resolver failed", "error", err)
	return &resolverError{
		message:    "Internal server error",
		code:       "INTERNAL_SERVER_ERROR",
		statusCode: http.StatusInternalServerError,
	}
}
