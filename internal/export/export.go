// Package export mirrors created payments to an external spreadsheet.
package export

import (
	"context"

	"paytrack/internal/core"
)

// PaymentExporter appends one payment row to an external sink and returns a
// reference to the written row.
type PaymentExporter interface {
	ExportPayment(ctx context.Context, p core.Payment) (string, error)
}
