package service

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// PriceRow is one pricing row from the catalog authoring spreadsheet.
// Kind is "bundle", "service" or "addon"; Bracket is a size bracket id or
// "flat" for flat-priced items; Price is the raw display form ("$329",
// "39/image") and is normalized by the catalog loader, not here.
type PriceRow struct {
	Kind    string
	ID      string
	Bracket string
	Price   string
}

// SheetsService handles Google Sheets API operations
type SheetsService struct {
	client *sheets.Service
}

// NewSheetsService creates a new SheetsService instance
// credentialsPath should be the path to the Service Account JSON file
func NewSheetsService(credentialsPath string) (*SheetsService, error) {
	ctx := context.Background()

	sheetsService, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsService{
		client: sheetsService,
	}, nil
}

// Ensure SheetsService implements SheetsServiceInterface
var _ SheetsServiceInterface = (*SheetsService)(nil)

// FetchPriceRows reads the pricing range from the authoring spreadsheet.
// Expected columns: kind | id | bracket | price. A header row is skipped
// when its first cell is "kind"; blank and short rows are skipped.
func (s *SheetsService) FetchPriceRows(spreadsheetID, readRange string) ([]PriceRow, error) {
	resp, err := s.client.Spreadsheets.Values.Get(spreadsheetID, readRange).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet values: %w", err)
	}

	var rows []PriceRow
	for _, raw := range resp.Values {
		if len(raw) < 4 {
			continue
		}
		row := PriceRow{
			Kind:    strings.ToLower(strings.TrimSpace(fmt.Sprint(raw[0]))),
			ID:      strings.TrimSpace(fmt.Sprint(raw[1])),
			Bracket: strings.TrimSpace(fmt.Sprint(raw[2])),
			Price:   strings.TrimSpace(fmt.Sprint(raw[3])),
		}
		if row.Kind == "kind" || row.ID == "" || row.Price == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
