package formatter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEncode_RoundTrip(t *testing.T) {
	original := Table{
		Columns: []string{"ingredient", "amount", "unit"},
		Rows: []Row{
			{"ingredient": "flour", "amount": "200", "unit": "g"},
			{"ingredient": "eggs", "amount": json.Number("2")},
			{"ingredient": "milk", "amount": "300", "unit": "ml"},
		},
	}

	raw, err := original.Encode("Pancakes")
	require.NoError(t, err)

	assert.Equal(t, original, Format(context.Background(), raw))
}

func TestEncode_PreservesColumnOrder(t *testing.T) {
	table := Table{
		Columns: []string{"z", "a", "m"},
		Rows:    []Row{{"z": json.Number("1"), "a": json.Number("2"), "m": json.Number("3")}},
	}

	raw, err := table.Encode("X")
	require.NoError(t, err)
	assert.Equal(t, `{"X":[{"z":1,"a":2,"m":3}]}`, raw)
	assert.Equal(t, []string{"z", "a", "m"}, Format(context.Background(), raw).Columns)
}

func TestEncode_SpecialCharactersInKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
		cols []string
	}{
		{"path characters", "St. Louis ribs", []string{"qty.g", "name|alt", "@this", "#", "a*b?"}},
		{"empty key and column", "", []string{"", " b"}},
		{"numeric keys", "0", []string{"0", "-1"}},
		{"quotes and escapes", `x"y`, []string{`back\slash`, "tab\t", "日本"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{}
			for i, col := range tt.cols {
				row[col] = json.Number(string(rune('1' + i)))
			}
			table := Table{Columns: tt.cols, Rows: []Row{row, {tt.cols[0]: "only"}}}

			raw, err := table.Encode(tt.key)
			require.NoError(t, err)

			assert.Equal(t, table, Format(context.Background(), raw))
			assert.Equal(t, tt.key, gjsonFirstKey(t, raw))
		})
	}
}

func TestEncode_LargeNumbersRoundTrip(t *testing.T) {
	raw := `{"X":[{"id":12345678901234567891,"qty":0.1}]}`

	table := Format(context.Background(), raw)
	encoded, err := table.Encode("X")

	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func gjsonFirstKey(t *testing.T, raw string) string {
	t.Helper()
	var key string
	gjson.Parse(raw).ForEach(func(k, _ gjson.Result) bool {
		key = k.String()
		return false
	})
	return key
}

func TestEncode_EmptyTable(t *testing.T) {
	raw, err := Table{}.Encode("Lasagna")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Lasagna":[]}`, raw)
}
