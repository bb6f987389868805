package recommend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shpitdev/air-assist/internal/util"
)

const detailMax = 256

// Parse decodes sanitized text as a JSON object or array. Numbers are kept as
// json.Number. Any failure, including trailing data or a scalar document, is a
// KindParse *Error carrying a bounded prefix of text.
func Parse(text string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newError(KindParse, util.Truncate(text, detailMax), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newError(KindParse, util.Truncate(text, detailMax), errors.New("unexpected data after JSON value"))
	}

	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	default:
		return nil, newError(KindParse, util.Truncate(text, detailMax), fmt.Errorf("expected JSON object or array, got %T", v))
	}
}
