// Package mirror keeps redundant flat-file copies of the product catalog:
// a delimited text file, an indented JSON array, and a CSV with header.
// The files are rewritten in full after every catalog mutation and are only
// ever read back by the report routes.
package mirror

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
)

// File names inside the data directory.
const (
	TextFile = "datos.txt"
	JSONFile = "datos.json"
	CSVFile  = "datos.csv"
)

// Record is the exported per-product view shared by the three formats.
type Record struct {
	Nombre   string  `json:"nombre"`
	Cantidad int     `json:"cantidad"`
	Precio   float64 `json:"precio"`
}

// ProductSource supplies the full product set to export.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]*catalog.Product, error)
}

// Mirror writes and reads the flat-file copies under a single directory.
type Mirror struct {
	dir    string
	source ProductSource
}

// New creates a Mirror rooted at dir, creating the directory if needed.
func New(dir string, source ProductSource) (*Mirror, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Mirror{dir: dir, source: source}, nil
}

// Sync reads the full product set and rewrites all three files. Overwrite,
// never append: the files always reflect the current catalog.
func (m *Mirror) Sync(ctx context.Context) error {
	products, err := m.source.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	records := make([]Record, 0, len(products))
	for _, p := range products {
		records = append(records, Record{Nombre: p.Name, Cantidad: p.Quantity, Precio: p.Price})
	}

	if err := m.writeText(records); err != nil {
		return err
	}
	if err := m.writeJSON(records); err != nil {
		return err
	}
	return m.writeCSV(records)
}

func (m *Mirror) writeText(records []Record) error {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(rec.Nombre)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(rec.Cantidad))
		b.WriteByte(',')
		b.WriteString(formatPrice(rec.Precio))
		b.WriteByte('\n')
	}
	return os.WriteFile(m.path(TextFile), []byte(b.String()), 0o644)
}

func (m *Mirror) writeJSON(records []Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path(JSONFile), data, 0o644)
}

func (m *Mirror) writeCSV(records []Record) error {
	f, err := os.Create(m.path(CSVFile))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"nombre", "cantidad", "precio"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{rec.Nombre, strconv.Itoa(rec.Cantidad), formatPrice(rec.Precio)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadText parses the delimited text file. A missing or malformed file
// degrades to an empty result set.
func (m *Mirror) ReadText() []Record {
	data, err := os.ReadFile(m.path(TextFile))
	if err != nil {
		return []Record{}
	}

	var records []Record
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return []Record{}
		}
		quantity, err := strconv.Atoi(parts[1])
		if err != nil {
			return []Record{}
		}
		price, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return []Record{}
		}
		records = append(records, Record{Nombre: parts[0], Cantidad: quantity, Precio: price})
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

// ReadJSON parses the JSON mirror, degrading to empty on any failure.
func (m *Mirror) ReadJSON() []Record {
	data, err := os.ReadFile(m.path(JSONFile))
	if err != nil {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		return []Record{}
	}
	return records
}

// ReadCSV parses the CSV mirror, degrading to empty on any failure.
func (m *Mirror) ReadCSV() []Record {
	f, err := os.Open(m.path(CSVFile))
	if err != nil {
		return []Record{}
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil || len(rows) < 1 {
		return []Record{}
	}

	records := []Record{}
	for _, row := range rows[1:] { // skip header
		if len(row) != 3 {
			return []Record{}
		}
		quantity, err := strconv.Atoi(row[1])
		if err != nil {
			return []Record{}
		}
		price, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return []Record{}
		}
		records = append(records, Record{Nombre: row[0], Cantidad: quantity, Precio: price})
	}
	return records
}

// Exists reports whether any mirror file is present, mostly for tests.
func (m *Mirror) Exists(name string) bool {
	_, err := os.Stat(m.path(name))
	return !errors.Is(err, fs.ErrNotExist)
}

func (m *Mirror) path(name string) string {
	return filepath.Join(m.dir, name)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
