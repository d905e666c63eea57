package dubbing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTable decodes an uploaded CSV transcript. The first record is the
// header; short rows simply lack the trailing columns. Duplicate header
// names keep their first occurrence. An empty upload yields an empty table,
// rejecting it is up to the caller.
func ParseTable(data []byte) (*entities.Table, error) {
	if !utf8.Valid(data) {
		return nil, entities.ErrMalformedEncoding
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &entities.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidTable, err)
	}

	table := &entities.Table{}
	index := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		index[i] = name
		table.Columns = append(table.Columns, name)
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entities.ErrInvalidTable, err)
		}

		row := make(entities.Row, len(table.Columns))
		for i, value := range record {
			if i >= len(index) || index[i] == "" {
				continue
			}
			row[index[i]] = strings.TrimSpace(value)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
