package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shpitdev/air-assist/internal/recommend"
)

// Input formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// FormatFromPath guesses the input format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("cannot infer input format from %q (want .csv, .jsonl or .ndjson)", path)
	}
}

// ReadAnswers reads questionnaires in the given format.
func ReadAnswers(r io.Reader, format string) ([]recommend.Answers, error) {
	switch format {
	case FormatCSV:
		return ReadAnswersCSV(r)
	case FormatJSONL:
		return ReadAnswersJSONL(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// ReadAnswersCSV reads one questionnaire per row. Header columns become answer keys;
// empty cells are omitted and the willingToTravelFar column is parsed as a bool.
func ReadAnswersCSV(r io.Reader) ([]recommend.Answers, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	keys := make([]string, len(header))
	for i, col := range header {
		keys[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	var out []recommend.Answers
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) > len(keys) {
			return nil, fmt.Errorf("row %d has %d columns, header has %d", line, len(rec), len(keys))
		}

		a := recommend.Answers{}
		for i, v := range rec {
			v = strings.TrimSpace(v)
			if keys[i] == "" || v == "" {
				continue
			}
			if keys[i] == recommend.KeyWillingToTravelFar {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid %s=%q: %w", line, keys[i], v, err)
				}
				a[keys[i]] = b
				continue
			}
			a[keys[i]] = v
		}
		out = append(out, a)
	}
	return out, nil
}

// ReadAnswersJSONL reads one JSON object per line. Blank lines are skipped.
func ReadAnswersJSONL(r io.Reader) ([]recommend.Answers, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out []recommend.Answers
	for line := 1; sc.Scan(); line++ {
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var a recommend.Answers
		if err := json.Unmarshal(b, &a); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if a == nil {
			return nil, fmt.Errorf("line %d: expected a JSON object", line)
		}
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

// WriteJSONL writes rows as JSON lines.
func WriteJSONL(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("write row %d: %w", row.Line, err)
		}
	}
	return nil
}
