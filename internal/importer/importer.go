package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"agrimarket-cart/internal/sessionblob"
)

type SessionWriter interface {
	Save(ctx context.Context, sessionID string, blob []byte) error
}

type SessionNormalizer interface {
	Normalize(raw string) (string, error)
}

// Stats summarizes one import run.
type Stats struct {
	Imported     int
	Skipped      int
	Migrated     int
	DroppedLines int
	MergedLines  int
}

// CSVImporter loads exported browser carts (session_id,cart_json rows) into the
// session backend, rewriting every blob in the current format.
type CSVImporter struct {
	reader   *csv.Reader
	sessions SessionWriter
	ids      SessionNormalizer
	logger   *log.Logger
}

func NewCSVImporter(r io.Reader, sessions SessionWriter, ids SessionNormalizer, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CSVImporter{
		reader:   csvr,
		sessions: sessions,
		ids:      ids,
		logger:   logger,
	}
}

// Run imports every row. Rows with a bad session id or an unreadable blob are
// skipped; backend write errors abort the run.
func (i *CSVImporter) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	headers, err := i.reader.Read()
	if err != nil {
		return stats, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["session_id"]; !ok {
		return stats, errors.New("missing session_id column")
	}
	if _, ok := index["cart_json"]; !ok {
		return stats, errors.New("missing cart_json column")
	}

	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read row: %w", err)
		}

		rawID := pick(record, index, "session_id")
		if rawID == "" {
			continue
		}
		id, err := i.ids.Normalize(rawID)
		if err != nil {
			i.logger.Printf("line %d: skip session %q: %v", line, rawID, err)
			stats.Skipped++
			continue
		}

		state, report, err := sessionblob.Decode([]byte(pick(record, index, "cart_json")))
		if err != nil {
			i.logger.Printf("line %d: skip session %s: %v", line, id, err)
			stats.Skipped++
			continue
		}
		blob, err := sessionblob.Encode(state)
		if err != nil {
			return stats, fmt.Errorf("encode session %s: %w", id, err)
		}
		if err := i.sessions.Save(ctx, id, blob); err != nil {
			return stats, fmt.Errorf("save session %s: %w", id, err)
		}

		stats.Imported++
		stats.DroppedLines += len(report.Dropped)
		stats.MergedLines += report.Merged
		if report.FromVersion != sessionblob.CurrentVersion {
			stats.Migrated++
		}
	}

	return stats, nil
}

// ImportFile opens path on fsys and runs an import over it.
func ImportFile(ctx context.Context, fsys fs.FS, path string, sessions SessionWriter, ids SessionNormalizer, logger *log.Logger) (Stats, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return NewCSVImporter(f, sessions, ids, logger).Run(ctx)
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
