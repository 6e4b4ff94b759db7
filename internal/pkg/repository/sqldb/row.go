package sqldb

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Row is one result row. It keeps the query's column order, also when
// marshaled to JSON.
type Row struct {
	columns []string
	values  map[string]interface{}
}

func newRow(columns []string, values []interface{}) Row {
	r := Row{
		columns: columns,
		values:  make(map[string]interface{}, len(columns)),
	}
	for i, col := range columns {
		r.values[col] = normalize(values[i])
	}
	return r
}

// Columns returns the column names in query order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the value of a column, or nil.
func (r Row) Get(column string) interface{} {
	return r.values[column]
}

// Float returns a numeric column as float64; anything else is 0.
func (r Row) Float(column string) float64 {
	switch v := r.values[column].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// String returns a text column, or "".
func (r Row) String(column string) string {
	if s, ok := r.values[column].(string); ok {
		return s
	}
	return ""
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// normalize turns driver byte slices (MySQL, SQL Server decimals) into text.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
