package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds retries when a freshly issued number collides
// with an existing document, e.g. one imported by hand
const maxNumberAttempts = 3

// numberIssuer draws numbers from the sequence and persists the document
type numberIssuer struct {
	seq      repository.DocumentSequence
	observer DocumentObserver
}

// issue calls create with the next number until it stops conflicting
func (n numberIssuer) issue(ctx context.Context, tenantID uuid.UUID, docType enum.DocumentType, create func(number string) error) error {
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		var seq int64
		seq, err = n.seq.Next(ctx, tenantID, docType)
		if err != nil {
			return err
		}

		number := pricing.FormatNumber(docType, seq)
		err = create(number)
		if !errors.Is(err, repository.ErrConflict) {
			break
		}
		logger.FromContext(ctx).Warn("document number already taken, retrying",
			zap.String("number", number), zap.Int("attempt", attempt))
	}
	if err != nil {
		return mapWriteError(err, string(docType))
	}

	if n.observer != nil {
		n.observer.DocumentIssued(string(docType))
	}
	return nil
}
