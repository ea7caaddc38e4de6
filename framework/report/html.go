package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/redhat/browser-e2e-tests/test/framework/artifacts"
)

//go:embed templates/*
var templateFS embed.FS

// Link points at one artifact file, relative to the index
type Link struct {
	Label string
	Href  string
}

type specRow struct {
	SpecResult
	Links []Link
}

type indexData struct {
	Run     *Run
	Summary Summary
	Specs   []specRow
}

var artifactLabels = []struct {
	suffix, label string
}{
	{artifacts.SuffixURL, "url"},
	{artifacts.SuffixSource, "html"},
	{artifacts.SuffixScreenshot, "screenshot"},
	{artifacts.SuffixA11y, "a11y"},
	{artifacts.SuffixBrowserLog, "browser log"},
	{artifacts.SuffixDriverLog, "driver log"},
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDuration": formatDuration,
		"formatTime":     formatTime,
	}
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	return fmt.Sprintf("%dm", mins)
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}

// WriteHTML renders the run index to outputPath. Artifact links are relative
// to the index and only point at files that exist.
func WriteHTML(run *Run, outputPath string) error {
	tmpl, err := template.New("index").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	dir := filepath.Dir(outputPath)
	data := indexData{Run: run, Summary: run.Summary()}
	for _, spec := range run.Specs {
		data.Specs = append(data.Specs, specRow{SpecResult: spec, Links: links(dir, spec.Artifacts)})
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := tmpl.ExecuteTemplate(file, "index.html", data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

func links(dir, base string) []Link {
	if base == "" {
		return nil
	}
	var out []Link
	for _, a := range artifactLabels {
		target := base + a.suffix
		if _, err := os.Stat(target); err != nil {
			continue
		}
		href, err := filepath.Rel(dir, target)
		if err != nil {
			href = target
		}
		out = append(out, Link{Label: a.label, Href: filepath.ToSlash(href)})
	}
	return out
}
