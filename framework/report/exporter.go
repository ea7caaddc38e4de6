package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Exporter writes a run somewhere
type Exporter interface {
	Export(run *Run) error
}

// NewExporter returns an exporter for format, or one picked from the file
// extension when format is empty. CSV is the fallback.
func NewExporter(outputPath string, format Format) Exporter {
	if format == "" {
		if strings.EqualFold(filepath.Ext(outputPath), ".json") {
			format = FormatJSON
		} else {
			format = FormatCSV
		}
	}
	if format == FormatJSON {
		return NewJSONExporter(outputPath)
	}
	return NewCSVExporter(outputPath)
}

// CSVExporter writes one row per spec
type CSVExporter struct {
	outputPath string
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(outputPath string) *CSVExporter {
	return &CSVExporter{outputPath: outputPath}
}

// Export writes the run to CSV
func (e *CSVExporter) Export(run *Run) error {
	if err := os.MkdirAll(filepath.Dir(e.outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(e.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"run_id", "spec", "state", "started_at", "duration_ms", "failure", "artifacts"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, spec := range run.Specs {
		row := []string{
			run.ID,
			spec.Name(),
			spec.State,
			spec.StartedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(spec.Duration.Milliseconds(), 10),
			spec.Failure,
			spec.Artifacts,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// JSONExporter writes the whole run as one document
type JSONExporter struct {
	outputPath string
}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter(outputPath string) *JSONExporter {
	return &JSONExporter{outputPath: outputPath}
}

// Export writes the run to JSON
func (e *JSONExporter) Export(run *Run) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(e.outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(e.outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// LoadJSON reads a run written by JSONExporter
func LoadJSON(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &run, nil
}
