package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type fakeDrive struct {
	data []byte
	url  string
}

func (d *fakeDrive) Download(ctx context.Context, url string) (io.ReadCloser, string, error) {
	d.url = url
	return io.NopCloser(bytes.NewReader(d.data)), "trailers.xlsx", nil
}

func TestImportWorkbookAddsOneRecordPerRow(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewImportService(newTestCollectionService(store), nil)

	data := workbook(t, [][]any{
		{"ID", "Year", "Reefer", "Notes"},
		{"TRL100", 2019, "yes", "ignored"},
		{"", "", "", ""},
		{"TRL200", "", "no"},
	})

	n, err := svc.ImportWorkbook(context.Background(), "trailer_master", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ImportWorkbook: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d rows, want 2", n)
	}
	rows := store.rows["trailer_master"]
	if rows[0]["id"] != "TRL100" || rows[0]["year"] != int64(2019) || rows[0]["reefer"] != true {
		t.Errorf("first row = %v", rows[0])
	}
	if _, ok := rows[1]["year"]; ok {
		t.Errorf("blank cells should be skipped, got %v", rows[1])
	}
}

func TestImportWorkbookRejectsGarbage(t *testing.T) {
	svc := NewImportService(newTestCollectionService(newFakeRecordStore()), nil)
	ctx := context.Background()

	if _, err := svc.ImportWorkbook(ctx, "trailer_master", bytes.NewReader([]byte("not a workbook"))); !errors.Is(err, ErrValidation) {
		t.Errorf("garbage: err = %v", err)
	}
	if _, err := svc.ImportWorkbook(ctx, "galaxies", bytes.NewReader(nil)); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("unknown collection: err = %v", err)
	}
}

func TestImportFromDrive(t *testing.T) {
	store := newFakeRecordStore()
	drive := &fakeDrive{data: workbook(t, [][]any{{"name", "type"}, {"FRZ", "warehouse"}})}
	svc := NewImportService(newTestCollectionService(store), drive)
	ctx := context.Background()

	link := "https://drive.google.com/file/d/abc123/view"
	n, err := svc.ImportFromDrive(ctx, "locations", link)
	if err != nil {
		t.Fatalf("ImportFromDrive: %v", err)
	}
	if n != 1 || drive.url != link {
		t.Errorf("imported %d rows from %q", n, drive.url)
	}
	if _, err := svc.ImportFromDrive(ctx, "locations", "https://example.com/file.xlsx"); !errors.Is(err, ErrValidation) {
		t.Errorf("non-drive link: err = %v", err)
	}

	unconfigured := NewImportService(newTestCollectionService(store), nil)
	if _, err := unconfigured.ImportFromDrive(ctx, "locations", link); !errors.Is(err, ErrValidation) {
		t.Errorf("no drive: err = %v", err)
	}
}
