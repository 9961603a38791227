package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrConflict = errors.New("resource already exists")

	ErrValidation = errors.New("invalid input")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// NotFoundError carrega a chave de busca usada para localizar o recurso.
// A mensagem segue o formato `No resource was found for {"id":"<id>"}`.
type NotFoundError struct {
	Where map[string]string
}

func NewNotFoundError(key string, value string) *NotFoundError {
	return &NotFoundError{Where: map[string]string{key: value}}
}

func (e *NotFoundError) Error() string {
	where, err := json.Marshal(e.Where)
	if err != nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("No resource was found for %s", where)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError lista os problemas encontrados no payload de entrada.
type ValidationError struct {
	Issues []string
}

func NewValidationError(issues ...string) *ValidationError {
	return &ValidationError{Issues: issues}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Issues, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
