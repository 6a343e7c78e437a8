// Package store persists per-conversation message tables as CSV files
// and derives the watermark that makes re-extraction incremental.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/cespare/xxhash"
	"github.com/google/uuid"

	"github.com/tylerchilds/textvault/internal/extract"
)

// FileName is the message table file within a conversation's data dir.
const FileName = "messages.csv"

var header = []string{"sender", "text", "time", "type"}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`\W+`)
)

// DirName derives a filesystem-friendly directory name from a chat
// name: whitespace becomes underscores and every other non-word
// character is removed. If nothing survives, a hash of the original
// name is used instead.
func DirName(chatName string) string {
	name := whitespaceRe.ReplaceAllString(chatName, "_")
	name = nonWordRe.ReplaceAllString(name, "")
	if name == "" {
		name = strconv.FormatUint(xxhash.Sum64String(chatName), 10)
	}
	return name
}

// Load reads a previously persisted message table. The watermark is
// the timestamp of the last row, which holds the maximum because
// extraction orders by timestamp ascending and Merge only appends.
// If persistence is ever reordered externally the watermark silently
// goes stale; that risk is accepted, the file stays self-describing.
// A missing file means no prior data: (nil, "", nil).
func Load(path string) (extract.Table, string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open message table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read message table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, "", nil
	}

	// records[0] is the header
	table := make(extract.Table, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, "", fmt.Errorf("malformed row in message table %s: %v", path, rec)
		}
		table = append(table, extract.Message{
			Sender: rec[0],
			Text:   rec[1],
			Time:   rec[2],
			Type:   rec[3],
		})
	}

	watermark := ""
	if len(table) > 0 {
		watermark = table[len(table)-1].Time
	}
	return table, watermark, nil
}

// Merge appends newly fetched rows to the prior table.
func Merge(prior, newer extract.Table) extract.Table {
	combined := make(extract.Table, 0, len(prior)+len(newer))
	combined = append(combined, prior...)
	combined = append(combined, newer...)
	return combined
}

// Persist writes the message table to path atomically: the CSV is
// written to a temp file next to the target and renamed into place, so
// a crash never leaves a truncated table behind.
func Persist(path string, table extract.Table) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.New().String())

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp message table: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, msg := range table {
		if err := w.Write([]string{msg.Sender, msg.Text, msg.Time, msg.Type}); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush message table: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp message table: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace message table: %w", err)
	}
	return nil
}
