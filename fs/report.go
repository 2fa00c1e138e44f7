package fs

import (
	"fmt"
	"sync"

	"github.com/fwojciec/feedscrape"
)

// DefaultReportFile is the report file used when none is configured.
const DefaultReportFile = "linkedin_output.txt"

// WriteReport renders the report and writes it to path.
func WriteReport(path string, r *feedscrape.Report) error {
	if err := writeFile(path, []byte(feedscrape.FormatReport(r)), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// DefaultDebugFile is the debug dump file used when none is configured.
const DefaultDebugFile = "debug.html"

// Ensure DebugWriter implements feedscrape.DebugDumper at compile time.
var _ feedscrape.DebugDumper = (*DebugWriter)(nil)

// DebugWriter saves page markup to a file for offline inspection.
// Each dump replaces the previous one.
type DebugWriter struct {
	path string
	mu   sync.Mutex
}

// NewDebugWriter creates a DebugWriter that writes to path.
func NewDebugWriter(path string) *DebugWriter {
	return &DebugWriter{path: path}
}

// Path returns the file the markup is written to.
func (w *DebugWriter) Path() string {
	return w.path
}

// DumpHTML writes html to the debug file.
func (w *DebugWriter) DumpHTML(html string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return writeFile(w.path, []byte(html), 0644)
}
