package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"paytrack/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// GoogleSheets appends payment rows to a single sheet in a spreadsheet.
type GoogleSheets struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ PaymentExporter = (*GoogleSheets)(nil)

// NewGoogleSheetsFromEnv builds a client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. GOOGLE_SHEET_NAME defaults to "Payments".
func NewGoogleSheetsFromEnv(ctx context.Context) (*GoogleSheets, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Payments"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &GoogleSheets{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ExportPayment appends one row: date, profile, category, description,
// amount, paid flag, due date.
func (g *GoogleSheets) ExportPayment(ctx context.Context, p core.Payment) (string, error) {
	if g.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	paid := "due"
	if p.IsPaid {
		paid = "paid"
	}
	dueDate := ""
	if p.DueDate != nil && !p.DueDate.IsZero() {
		dueDate = p.DueDate.UTC().Format("2006-01-02")
	}

	rng := fmt.Sprintf("%s!A:G", g.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{{
		p.Date.UTC().Format("2006-01-02"),
		p.ProfileID,
		string(p.Category),
		p.Description,
		p.Amount,
		paid,
		dueDate,
	}}}

	resp, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", g.sheetName, err)
	}

	ref := time.Now().UTC().Format(time.RFC3339)
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}
