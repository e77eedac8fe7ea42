package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	infraRepo "github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
)

// DocumentObserver is told about every newly numbered document
type DocumentObserver interface {
	DocumentIssued(docType string)
}

type nopObserver struct{}

func (nopObserver) DocumentIssued(string) {}

// tenantFromContext returns the caller's tenant or rejects the request
// before any storage is touched
func tenantFromContext(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return uuid.Nil, apperror.ErrMissingTenant
	}
	return tenantID, nil
}

// mapWriteError turns repository sentinels into client errors for resource
func mapWriteError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NewNotFoundError(resource)
	case errors.Is(err, repository.ErrConflict):
		return apperror.NewConflictError(resource + " already exists")
	}
	return err
}

// optionalString trims s and returns nil when nothing is left
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func required(field, value string) *apperror.FieldError {
	if strings.TrimSpace(value) == "" {
		return &apperror.FieldError{Field: field, Message: "is required"}
	}
	return nil
}

// collect drops nil field errors and wraps the rest as a validation error
func collect(errs ...*apperror.FieldError) error {
	var out []apperror.FieldError
	for _, e := range errs {
		if e != nil {
			out = append(out, *e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return apperror.NewValidationError(out)
}
