package rates

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
)

var csvHeader = []string{"Date", "Rate"}

// CSVFileRepository stores the series as a two-column CSV file.
type CSVFileRepository struct {
	Path string
}

// NewCSVFileRepository creates a repository at path.
func NewCSVFileRepository(path string) *CSVFileRepository {
	return &CSVFileRepository{Path: path}
}

func (r *CSVFileRepository) Name() string { return r.Path }

// Load reads the file. A missing file is ErrNoData.
func (r *CSVFileRepository) Load(_ context.Context) ([]domain.RatePoint, error) {
	file, err := os.Open(r.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("failed to open file %s: %w", r.Path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// Save writes the file atomically via a temporary file in the same directory.
func (r *CSVFileRepository) Save(_ context.Context, points []domain.RatePoint) error {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".rates-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, points); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.Path, err)
	}
	return nil
}

// ReadCSV parses a date/rate CSV. The first row is a header; rows with an
// unparseable date or rate are skipped.
func ReadCSV(rd io.Reader) ([]domain.RatePoint, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []domain.RatePoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		date, ok := dateutil.Parse(strings.TrimSpace(record[0]))
		if !ok {
			continue
		}
		rate, ok := money.TryParse(record[1])
		if !ok {
			continue
		}
		points = append(points, domain.RatePoint{Date: date, Rate: rate})
	}

	if len(points) == 0 {
		return nil, ErrNoData
	}
	return points, nil
}

// WriteCSV writes points in the given order under a Date,Rate header.
func WriteCSV(w io.Writer, points []domain.RatePoint) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range points {
		if err := writer.Write([]string{p.Date.Format(dateutil.ISO), p.Rate.String()}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
