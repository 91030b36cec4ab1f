package service

// SheetsServiceInterface defines the contract for reading the catalog
// authoring spreadsheet
type SheetsServiceInterface interface {
	FetchPriceRows(spreadsheetID, readRange string) ([]PriceRow, error)
}
