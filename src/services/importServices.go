package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/SimpleYM/SimpleYM-Backend/src/metrics"
	"github.com/SimpleYM/SimpleYM-Backend/src/utils"
	"github.com/xuri/excelize/v2"
)

// DriveDownloader fetches a spreadsheet from a shared Drive link.
type DriveDownloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, string, error)
}

type ImportService struct {
	records *CollectionService
	drive   DriveDownloader
}

// NewImportService creates a new instance of ImportService. drive may be nil.
func NewImportService(records *CollectionService, drive DriveDownloader) *ImportService {
	return &ImportService{records: records, drive: drive}
}

// ImportWorkbook adds one record per data row of the workbook's first sheet. The first row
// holds the field names.
func (s *ImportService) ImportWorkbook(ctx context.Context, collection string, r io.Reader) (int, error) {
	if _, err := LookupCollection(collection); err != nil {
		return 0, err
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: not a readable workbook: %v", ErrValidation, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("%w: workbook has no sheets", ErrValidation)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: workbook has no header row", ErrValidation)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	data := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]any, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				record[headers[i]] = cell
			}
		}
		if len(record) > 0 {
			data = append(data, record)
		}
	}

	log.Printf("[IMPORT] %s: %d data rows read from sheet %s", collection, len(data), sheets[0])
	ids, err := s.records.AddRecords(ctx, collection, data)
	if err != nil {
		return 0, err
	}
	metrics.RecordsImported.WithLabelValues(collection).Add(float64(len(ids)))
	return len(ids), nil
}

// ImportFromDrive downloads a workbook from a Google Drive link and imports it.
func (s *ImportService) ImportFromDrive(ctx context.Context, collection, url string) (int, error) {
	if s.drive == nil {
		return 0, fmt.Errorf("%w: Google Drive import is not configured", ErrValidation)
	}
	if !utils.IsGoogleDriveURL(url) {
		return 0, fmt.Errorf("%w: %s is not a Google Drive link", ErrValidation, url)
	}
	body, name, err := s.drive.Download(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("download from drive: %w", err)
	}
	defer body.Close()

	log.Printf("[IMPORT] Importing %s into %s", name, collection)
	return s.ImportWorkbook(ctx, collection, body)
}
