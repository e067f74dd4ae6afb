package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoSheetID is returned when no document identifier can be extracted from
// a spreadsheet URL.
var ErrNoSheetID = errors.New("URL de Google Sheets inválida")

// ExtractSheetID extracts the document identifier from a Google Sheets URL.
// Two shapes are supported: a path segment following "/d/", or a "key" query
// parameter.
func ExtractSheetID(sheetURL string) (string, error) {
	parsed, err := url.Parse(sheetURL)
	if err != nil {
		return "", ErrNoSheetID
	}

	parts := strings.Split(parsed.Path, "/")
	for i, part := range parts {
		if part == "d" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}

	if key := parsed.Query().Get("key"); key != "" {
		return key, nil
	}
	return "", ErrNoSheetID
}

// StatusError reports a non-success HTTP response from the sheet host.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// SheetFetcher fetches the tabular CSV export of a spreadsheet document
// (or a test double).
type SheetFetcher interface {
	FetchCSV(ctx context.Context, sheetID string) ([][]string, error)
}

type sheetHTTPFetcher struct {
	client *http.Client
}

// NewSheetHTTPFetcher returns a fetcher that downloads the CSV export from
// docs.google.com.
func NewSheetHTTPFetcher(client *http.Client) SheetFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &sheetHTTPFetcher{client: client}
}

func (f *sheetHTTPFetcher) FetchCSV(ctx context.Context, sheetID string) ([][]string, error) {
	exportURL := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", sheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // real sheets have ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return records, nil
}
