package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tebeka/selenium/log"

	"github.com/redhat/browser-e2e-tests/test/framework/datetime"
)

// File suffixes, in capture order
const (
	SuffixURL        = ".url.txt"
	SuffixSource     = ".html"
	SuffixScreenshot = ".png"
	SuffixA11y       = ".a11y.json"
	SuffixBrowserLog = ".browser-logs.txt"
	SuffixDriverLog  = ".driver-raw-logs.txt"
)

// Source is the part of a browser session capture reads from
type Source interface {
	CurrentURL() (string, error)
	PageSource() (string, error)
	Screenshot() ([]byte, error)
	Log(typ log.Type) ([]log.Message, error)
	TakeA11yResults() (interface{}, bool)
}

// Entry is one browser or driver log line as written to disk
type Entry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
}

var unsafe = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

func sanitize(segment string) string {
	s := strings.TrimSpace(unsafe.Replace(segment))
	if s != "" && strings.Trim(s, ".") == "" {
		return strings.Repeat("_", len(s))
	}
	return s
}

// OutputPath builds the artifact stem for a spec from its title chain,
// outermost container first. The last segment gets a timestamp prefix.
func OutputPath(root string, titles []string, now time.Time) string {
	segments := make([]string, 0, len(titles)+1)
	segments = append(segments, root)
	for _, title := range titles {
		if s := sanitize(title); s != "" {
			segments = append(segments, s)
		}
	}

	stamp := datetime.FileStamp(now)
	if len(segments) == 1 {
		return filepath.Join(root, stamp)
	}
	last := len(segments) - 1
	segments[last] = stamp + " - " + segments[last]
	return filepath.Join(segments...)
}

// Capture writes every artifact of a failed spec next to base. Each step runs
// even when an earlier one failed; the returned error joins all failures.
func Capture(src Source, base string) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	var (
		written []string
		errs    []error
	)
	write := func(suffix string, data []byte) {
		name := base + suffix
		if err := os.WriteFile(name, data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", filepath.Base(name), err))
			return
		}
		written = append(written, name)
	}

	if url, err := src.CurrentURL(); err != nil {
		errs = append(errs, fmt.Errorf("current url: %w", err))
	} else {
		write(SuffixURL, []byte(url))
	}

	if html, err := src.PageSource(); err != nil {
		errs = append(errs, fmt.Errorf("page source: %w", err))
	} else {
		write(SuffixSource, []byte(html))
	}

	if png, err := src.Screenshot(); err != nil {
		errs = append(errs, fmt.Errorf("screenshot: %w", err))
	} else {
		write(SuffixScreenshot, png)
	}

	if results, ok := src.TakeA11yResults(); ok {
		if data, err := json.MarshalIndent(results, "", "  "); err != nil {
			errs = append(errs, fmt.Errorf("encode a11y results: %w", err))
		} else {
			write(SuffixA11y, data)
		}
	}

	for _, l := range []struct {
		typ    log.Type
		suffix string
	}{
		{log.Browser, SuffixBrowserLog},
		{log.Driver, SuffixDriverLog},
	} {
		data, err := readLog(src, l.typ)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		write(l.suffix, data)
	}

	return written, errors.Join(errs...)
}

// Drain reads the current URL and discards pending driver log entries
func Drain(src Source) error {
	if _, err := src.CurrentURL(); err != nil {
		return fmt.Errorf("current url: %w", err)
	}
	if _, err := src.Log(log.Driver); err != nil {
		return fmt.Errorf("drain %s log: %w", log.Driver, err)
	}
	return nil
}

func readLog(src Source, typ log.Type) ([]byte, error) {
	msgs, err := src.Log(typ)
	if err != nil {
		return nil, fmt.Errorf("%s log: %w", typ, err)
	}
	data, err := json.MarshalIndent(Entries(typ, msgs), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s log: %w", typ, err)
	}
	return data, nil
}

// Entries converts driver log messages to their on-disk form
func Entries(typ log.Type, msgs []log.Message) []Entry {
	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, Entry{
			Level:     string(m.Level),
			Message:   m.Message,
			Timestamp: m.Timestamp.UnixMilli(),
			Type:      string(typ),
		})
	}
	return entries
}
