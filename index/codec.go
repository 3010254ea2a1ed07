package index

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/data/errors"
)

// Delimiter separates the virtual path from its sector identifier within an
// index line. Paths use the same character, so lines are split on its last
// occurrence.
const Delimiter = "/"

// EncodeEntry formats a single index line, including the terminating newline.
func EncodeEntry(entry data.IndexEntry) []byte {
	return []byte(entry.Path + Delimiter + entry.Sector.String() + "\n")
}

// Encode formats all entries as index file content, one line per entry.
func Encode(entries []data.IndexEntry) []byte {
	var buf bytes.Buffer
	for _, entry := range entries {
		buf.Write(EncodeEntry(entry))
	}

	return buf.Bytes()
}

// Decode parses index file content. Blank lines are skipped.
func Decode(r io.Reader) ([]data.IndexEntry, error) {
	entries := make([]data.IndexEntry, 0)
	scanner := bufio.NewScanner(r)
	// Paths are limited by data.ToAbsolutePath to fit into one line
	scanner.Buffer(make([]byte, 0, 4096), data.MaxIndexLine)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}

		entry, err := decodeLine(text)
		if err != nil {
			return nil, errors.IndexCorrupt(err, fmt.Sprintf("line %d", line))
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.IndexCorrupt(err, fmt.Sprintf("line %d", line+1))
	}

	return entries, nil
}

// DecodeBytes is a convenience wrapper around Decode.
func DecodeBytes(content []byte) ([]data.IndexEntry, error) {
	return Decode(bytes.NewReader(content))
}

func decodeLine(line string) (data.IndexEntry, error) {
	pos := strings.LastIndex(line, Delimiter)
	if pos < 0 {
		return data.IndexEntry{}, fmt.Errorf("missing delimiter in '%s'", line)
	}

	sector, err := data.ParseSector(line[pos+1:])
	if err != nil {
		return data.IndexEntry{}, err
	}

	return data.NewIndexEntry(line[:pos], sector), nil
}
