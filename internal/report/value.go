// Package report holds the payload model for annual-report snapshots: a
// field map whose values are scalar strings, numbers, or small uniform
// tables, plus the completion metric and the plain-text export.
package report

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the payload value union.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTable
)

// Value is one payload field: a scalar string, a scalar number, or a table.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Table *Table
}

// Payload maps field keys to values for one report snapshot.
type Payload map[string]Value

// String returns a scalar string value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number returns a scalar numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// TableValue returns a tabular value.
func TableValue(t *Table) Value {
	return Value{Kind: KindTable, Table: t}
}

// Validate checks that every value in the payload has a storable shape.
func (p Payload) Validate() error {
	for key, v := range p {
		if err := v.validate(); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

func (v Value) validate() error {
	switch v.Kind {
	case KindString, KindNumber:
		return nil
	case KindTable:
		if v.Table == nil {
			return fmt.Errorf("nil table")
		}
		return v.Table.validate()
	}
	return fmt.Errorf("unknown value kind %d", v.Kind)
}

// tableJSON is the wire form of a table. The column array carries order;
// the data map carries the per-column value lists.
type tableJSON struct {
	Columns []string                     `json:"columns"`
	Data    map[string][]json.RawMessage `json:"data"`
}

// MarshalJSON encodes scalars as themselves and tables as a
// columns/data object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindTable:
		if v.Table == nil {
			return nil, fmt.Errorf("cannot encode nil table")
		}
		out := tableJSON{
			Columns: v.Table.Columns,
			Data:    make(map[string][]json.RawMessage, len(v.Table.Columns)),
		}
		for _, col := range v.Table.Columns {
			cells := v.Table.Data[col]
			raws := make([]json.RawMessage, len(cells))
			for i, cell := range cells {
				b, err := cell.MarshalJSON()
				if err != nil {
					return nil, err
				}
				raws[i] = b
			}
			out.Data[col] = raws
		}
		return json.Marshal(out)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

// UnmarshalJSON decodes a string, number, or columns/data table object.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch data[0] {
	case '"':
		v.Kind = KindString
		return json.Unmarshal(data, &v.Str)
	case '{':
		var tj tableJSON
		if err := json.Unmarshal(data, &tj); err != nil {
			return err
		}
		known := make(map[string]bool, len(tj.Columns))
		for _, col := range tj.Columns {
			known[col] = true
		}
		for col := range tj.Data {
			if !known[col] {
				return fmt.Errorf("data for unknown column %q", col)
			}
		}
		t := &Table{
			Columns: tj.Columns,
			Data:    make(map[string][]Value, len(tj.Columns)),
		}
		for _, col := range tj.Columns {
			raws := tj.Data[col]
			cells := make([]Value, len(raws))
			for i, raw := range raws {
				if err := cells[i].UnmarshalJSON(raw); err != nil {
					return err
				}
				if cells[i].Kind == KindTable {
					return fmt.Errorf("nested table in column %q", col)
				}
			}
			t.Data[col] = cells
		}
		v.Kind = KindTable
		v.Table = t
		return nil
	case 'n', 't', 'f':
		// null and booleans have no storable representation
		return fmt.Errorf("unsupported scalar %s", string(data))
	case '[':
		return fmt.Errorf("unsupported array value")
	default:
		v.Kind = KindNumber
		return json.Unmarshal(data, &v.Num)
	}
}

// Equal reports deep equality, including table column and row order.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindTable:
		return v.Table.Equal(o.Table)
	}
	return false
}
