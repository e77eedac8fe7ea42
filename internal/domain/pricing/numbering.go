package pricing

import (
	"fmt"

	"github.com/sangkips/quotedesk-api/internal/domain/enum"
)

// FormatNumber renders the sequence as PREFIX-0001. Sequences past 9999
// simply grow wider.
func FormatNumber(docType enum.DocumentType, seq int64) string {
	return fmt.Sprintf("%s-%04d", docType.Prefix(), seq)
}
