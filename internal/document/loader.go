// Package document loads the corpus from disk and cuts it into chunks for
// indexing. PDFs contribute one document per page, CSVs one per row, and
// plain text files one per file.
package document

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docuchat/backend/internal/model"
	"docuchat/backend/internal/textutil"
)

// Loader reads every supported file from a corpus directory.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load walks the corpus directory and returns the extracted documents along
// with the distinct sanitized filenames they came from. A file that fails to
// parse is skipped with a warning so one bad upload cannot empty the corpus.
func (l *Loader) Load() ([]model.Document, []string, error) {
	if _, err := os.Stat(l.dir); errors.Is(err, fs.ErrNotExist) {
		if mkErr := os.MkdirAll(l.dir, 0750); mkErr != nil {
			return nil, nil, fmt.Errorf("failed to create corpus directory: %w", mkErr)
		}
		slog.Warn("Corpus directory was missing and has been created", "dir", l.dir)
		return nil, nil, nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var docs []model.Document
	var filenames []string
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(l.dir, name)
		source := textutil.SanitizeFilename(name)

		var fileDocs []model.Document
		var loadErr error
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			fileDocs, loadErr = loadPDF(path, source)
		case ".csv":
			fileDocs, loadErr = loadCSV(path, source)
		case ".txt":
			fileDocs, loadErr = loadText(path, source)
		default:
			continue
		}

		if loadErr != nil {
			slog.Warn("Skipping unreadable corpus file", "file", name, "error", loadErr)
			continue
		}
		if len(fileDocs) == 0 {
			slog.Warn("Corpus file produced no text", "file", name)
			continue
		}

		docs = append(docs, fileDocs...)
		if !seen[source] {
			seen[source] = true
			filenames = append(filenames, source)
		}
		slog.Info("Loaded corpus file", "file", name, "documents", len(fileDocs))
	}

	return docs, filenames, nil
}

func loadPDF(path, source string) ([]model.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var docs []model.Document
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("Skipping unreadable PDF page", "file", source, "page", i, "error", err)
			continue
		}
		text = textutil.Normalize(text)
		if text == "" {
			continue
		}
		docs = append(docs, model.Document{SourceFile: source, Page: i, Content: text})
	}
	return docs, nil
}

// loadCSV renders each data row as "header: value" lines, one document per
// row, so a row stays retrievable as a unit.
func loadCSV(path, source string) ([]model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	var docs []model.Document
	for _, row := range records[1:] {
		var lines []string
		for i, value := range row {
			key := fmt.Sprintf("column_%d", i+1)
			if i < len(header) && strings.TrimSpace(header[i]) != "" {
				key = strings.TrimSpace(header[i])
			}
			lines = append(lines, key+": "+strings.TrimSpace(value))
		}
		content := strings.Join(lines, "\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		docs = append(docs, model.Document{SourceFile: source, Content: content})
	}
	return docs, nil
}

func loadText(path, source string) ([]model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []model.Document{{SourceFile: source, Content: text}}, nil
}
