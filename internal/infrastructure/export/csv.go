package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Exporter writes uniform-shape records to timestamped CSV files.
// Formatting rules: absent value → empty string, boolean → "Yes"/"No",
// floating value → fixed 2-decimal text.
type Exporter struct {
	dir string
	now func() time.Time
}

func New(dir string) *Exporter {
	return &Exporter{
		dir: dir,
		now: time.Now,
	}
}

// Export writes one CSV file named <name>_<timestamp>.csv and returns its path.
// Columns follow the given header list; each record is looked up by header key.
func (e *Exporter) Export(name string, headers []string, records []map[string]any) (string, error) {
	if name == "" {
		return "", fmt.Errorf("export: name is required")
	}
	if len(headers) == 0 {
		return "", fmt.Errorf("export: at least one header is required")
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: prepare dir: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.csv", name, e.now().UTC().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("export: write header: %w", err)
	}

	row := make([]string, len(headers))
	for _, record := range records {
		for i, h := range headers {
			row[i] = formatValue(record[h])
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush: %w", err)
	}
	return path, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case float64:
		return fmt.Sprintf("%.2f", t)
	case float32:
		return fmt.Sprintf("%.2f", t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
