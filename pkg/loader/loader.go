// pkg/loader/loader.go
package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/config"
	"github.com/David-Botos/app-profiles/pkg/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoHeader is returned when the input holds no rows at all
var ErrNoHeader = errors.New("input has no header row")

// CSVLoader reads delimited files into datasets
type CSVLoader struct {
	logger *zap.Logger
}

// NewCSVLoader creates a new CSVLoader
func NewCSVLoader(logger *zap.Logger) (*CSVLoader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &CSVLoader{logger: logger}, nil
}

// LoadFile opens the dataset's file and reads it
func (l *CSVLoader) LoadFile(cfg *config.DatasetConfig) (*model.Dataset, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Path, err)
	}
	defer f.Close()

	ds, err := l.Load(cfg.Name, f, cfg.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Path, err)
	}

	l.logger.Info("Loaded dataset",
		zap.String("dataset", ds.Name),
		zap.String("path", cfg.Path),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Header)))

	return ds, nil
}

// Load reads a header row followed by data rows. Rows may have any number
// of fields; malformed rows are left for the validity stage to drop.
func (l *CSVLoader) Load(name string, r io.Reader, delimiter rune) (*model.Dataset, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == string(utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if delimiter != 0 {
		reader.Comma = delimiter
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	ds := &model.Dataset{
		Name:   name,
		Header: header,
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(ds.Rows)+1, err)
		}
		ds.Rows = append(ds.Rows, model.Record(fields))
	}

	return ds, nil
}
