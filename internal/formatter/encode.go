package formatter

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/sjson"
)

// Encode serializes the table as {"<key>": [{...}, ...]} with fields in
// column order, the shape Parse accepts. Missing cells are omitted. Keys are
// written as JSON strings, so any key Parse can produce, including "",
// encodes.
func (t Table) Encode(key string) (string, error) {
	list := "[]"
	for _, row := range t.Rows {
		record, err := encodeRecord(t.Columns, row)
		if err != nil {
			return "", err
		}
		if list, err = sjson.SetRaw(list, "-1", record); err != nil {
			return "", err
		}
	}

	name, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	return "{" + string(name) + ":" + list + "}", nil
}

func encodeRecord(columns []string, row Row) (string, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	written := 0
	for _, col := range columns {
		v, ok := row[col]
		if !ok {
			continue
		}
		name, err := json.Marshal(col)
		if err != nil {
			return "", err
		}
		value, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		if written > 0 {
			sb.WriteByte(',')
		}
		sb.Write(name)
		sb.WriteByte(':')
		sb.Write(value)
		written++
	}
	sb.WriteByte('}')
	return sb.String(), nil
}
