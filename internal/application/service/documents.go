package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
)

// customerResolver turns a customer id or an inline customer into the
// snapshot stored on a document
type customerResolver struct {
	customerRepo repository.CustomerRepository
}

// resolve prefers the stored customer when id is set. The inline snapshot
// must at least carry a name otherwise.
func (r customerResolver) resolve(ctx context.Context, id *uuid.UUID, inline *entity.CustomerSnapshot) (*uuid.UUID, entity.CustomerSnapshot, error) {
	if id != nil {
		customer, err := r.customerRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, entity.CustomerSnapshot{}, err
		}
		if customer == nil {
			return nil, entity.CustomerSnapshot{}, apperror.NewFieldError("customer_id", "customer not found")
		}
		snapshot := customer.Snapshot()
		return snapshot.ID, snapshot, nil
	}

	if inline == nil || strings.TrimSpace(inline.Name) == "" {
		return nil, entity.CustomerSnapshot{}, apperror.NewFieldError("customer.name", "is required")
	}
	snapshot := *inline
	snapshot.ID = nil
	snapshot.Name = strings.TrimSpace(snapshot.Name)
	return nil, snapshot, nil
}

// validFrom returns a date days after now at the same time of day
func validFrom(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}

func requireItems(items []LineItemInput) error {
	if len(items) == 0 {
		return apperror.NewFieldError("items", "at least one item is required")
	}
	return nil
}
