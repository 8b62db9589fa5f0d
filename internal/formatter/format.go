package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/metrics"
)

var (
	ErrInvalidJSON     = errors.New("ingredient output is not valid JSON")
	ErrNotObject       = errors.New("ingredient output is not a JSON object")
	ErrNoKeys          = errors.New("ingredient output has no top-level key")
	ErrNotArray        = errors.New("ingredient list is not an array")
	ErrRecordNotObject = errors.New("ingredient record is not an object")
)

var malformedCodes = map[error]string{
	ErrInvalidJSON:     "INVALID_JSON",
	ErrNotObject:       "NOT_AN_OBJECT",
	ErrNoKeys:          "NO_KEYS",
	ErrNotArray:        "NOT_AN_ARRAY",
	ErrRecordNotObject: "RECORD_NOT_AN_OBJECT",
}

// Parse converts raw model text into a Table. The text must be a JSON object;
// the value of its first key, whatever the key is, must be an array of objects.
// Failures are MalformedIngredientOutput errors wrapping one of the Err* values.
func Parse(raw string) (Table, error) {
	t, err := parse(raw)
	if err != nil {
		return Table{}, apperrors.NewMalformedOutputError(err.Error(), malformedCodes[err], err)
	}
	return t, nil
}

// Format is Parse with the failure absorbed: malformed output is logged,
// counted and replaced by an empty table.
func Format(ctx context.Context, raw string) Table {
	t, err := parse(raw)
	if err != nil {
		slog.WarnContext(ctx, "Ingredient output could not be parsed, using empty table",
			"error", err.Error(),
			"output_length", len(raw))
		metrics.MalformedIngredientsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("reason", malformedCodes[err]),
		))
		return Table{}
	}

	metrics.IngredientRows.Record(ctx, int64(t.Len()))
	return t
}

func parse(raw string) (Table, error) {
	if !gjson.Valid(raw) {
		return Table{}, ErrInvalidJSON
	}

	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return Table{}, ErrNotObject
	}

	// First key in document order; its name is not checked. A key repeated
	// later in the object keeps its position and takes the last value.
	var firstKey string
	var list gjson.Result
	found := false
	doc.ForEach(func(key, value gjson.Result) bool {
		switch {
		case !found:
			firstKey, list, found = key.String(), value, true
		case key.String() == firstKey:
			list = value
		}
		return true
	})
	if !found {
		return Table{}, ErrNoKeys
	}
	if !list.IsArray() {
		return Table{}, ErrNotArray
	}

	var t Table
	seen := make(map[string]bool)
	var rowErr error
	list.ForEach(func(_, record gjson.Result) bool {
		if !record.IsObject() {
			rowErr = ErrRecordNotObject
			return false
		}
		row := make(Row)
		record.ForEach(func(key, value gjson.Result) bool {
			col := key.String()
			if !seen[col] {
				seen[col] = true
				t.Columns = append(t.Columns, col)
			}
			row[col] = cellValue(value)
			return true
		})
		t.Rows = append(t.Rows, row)
		return true
	})
	if rowErr != nil {
		return Table{}, rowErr
	}

	return t, nil
}

// cellValue converts a JSON value to a cell. Numbers stay json.Number so
// large integers and decimals keep their exact text.
func cellValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(v.Raw)
	case gjson.String:
		return v.String()
	}

	if v.IsArray() {
		items := []any{}
		v.ForEach(func(_, item gjson.Result) bool {
			items = append(items, cellValue(item))
			return true
		})
		return items
	}
	if v.IsObject() {
		fields := map[string]any{}
		v.ForEach(func(key, field gjson.Result) bool {
			fields[key.String()] = cellValue(field)
			return true
		})
		return fields
	}
	return v.Value()
}
