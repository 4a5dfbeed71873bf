package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kova98/lueur/models"
)

// CSVReport appends analytics rows to a CSV file, writing the header when the file is new.
type CSVReport struct {
	path string
}

func NewCSVReport(path string) *CSVReport {
	return &CSVReport{path: path}
}

func (r *CSVReport) AppendRow(row models.ReportRow) error {
	_, err := os.Stat(r.path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat report: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, DataFilePerm)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(models.ReportHeader); err != nil {
			return fmt.Errorf("write report header: %w", err)
		}
	}
	if err := w.Write(row.Record()); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return f.Close()
}

// MultiReport appends each row to every log in order and stops at the first failure.
type MultiReport []ReportLog

func (m MultiReport) AppendRow(row models.ReportRow) error {
	for _, sink := range m {
		if err := sink.AppendRow(row); err != nil {
			return err
		}
	}
	return nil
}
