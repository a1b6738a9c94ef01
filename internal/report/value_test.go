package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSONRoundTrip(t *testing.T) {
	table := NewTable("Organization", "No. of Members")
	table.AppendRow(String("United Methodist Men"), Number(25))
	table.AppendRow(String(""), Number(0))

	payload := Payload{
		"church_name":       String("Grace Chapel"),
		"church_membership": Number(120),
		"lay_organizations": TableValue(table),
	}
	require.NoError(t, payload.Validate())

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var got Payload
	require.NoError(t, json.Unmarshal(raw, &got))

	require.Len(t, got, 3)
	assert.True(t, got["church_name"].Equal(String("Grace Chapel")))
	assert.True(t, got["church_membership"].Equal(Number(120)))

	gotTable := got["lay_organizations"]
	require.Equal(t, KindTable, gotTable.Kind)
	assert.True(t, gotTable.Table.Equal(table))
}

func TestValueJSONScalars(t *testing.T) {
	raw, err := json.Marshal(String("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(raw))

	raw, err = json.Marshal(Number(12.5))
	require.NoError(t, err)
	assert.Equal(t, `12.5`, string(raw))
}

func TestValueUnmarshalRejectsNestedTable(t *testing.T) {
	nested := `{"columns":["A"],"data":{"A":[{"columns":["B"],"data":{"B":[]}}]}}`
	var v Value
	err := v.UnmarshalJSON([]byte(nested))
	assert.Error(t, err)
}

func TestValueUnmarshalRejectsNullAndBooleans(t *testing.T) {
	for _, raw := range []string{`null`, `true`, `false`, `[1,2]`} {
		var v Value
		assert.Error(t, v.UnmarshalJSON([]byte(raw)), "input %s", raw)
	}

	var p Payload
	err := json.Unmarshal([]byte(`{"x":null}`), &p)
	assert.Error(t, err, "null field must not decode as a zero")
}

func TestValueUnmarshalRejectsUnknownDataColumn(t *testing.T) {
	wire := `{"columns":["A"],"data":{"A":["x"],"B":["stray"]}}`
	var v Value
	err := v.UnmarshalJSON([]byte(wire))
	assert.ErrorContains(t, err, "unknown column")
}

func TestValidateRaggedTable(t *testing.T) {
	ragged := &Table{
		Columns: []string{"A", "B"},
		Data: map[string][]Value{
			"A": {String("x"), String("y")},
			"B": {String("z")},
		},
	}
	p := Payload{"bad": TableValue(ragged)}
	assert.Error(t, p.Validate())
}

func TestValidateMissingColumnData(t *testing.T) {
	missing := &Table{
		Columns: []string{"A", "B"},
		Data: map[string][]Value{
			"A": {String("x")},
		},
	}
	p := Payload{"bad": TableValue(missing)}
	assert.Error(t, p.Validate())
}

func TestTableHelpers(t *testing.T) {
	table := NewTable("Grade Level", "Enrolled at Start")
	table.AppendRow(String("Grade 1"), Number(30))
	table.AppendRow(String("Grade 2"), Number(12))

	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, 42.0, table.SumColumn("Enrolled at Start"))
	assert.True(t, table.IsNumeric("Enrolled at Start"))
	assert.False(t, table.IsNumeric("Grade Level"))
	assert.True(t, table.Cell(1, "Grade Level").Equal(String("Grade 2")))
	assert.Equal(t, Value{}, table.Cell(5, "Grade Level"))
}

func TestAppendRowPadsMissingCells(t *testing.T) {
	table := NewTable("A", "B", "C")
	table.AppendRow(String("x"))

	assert.True(t, table.Cell(0, "B").Equal(String("")))
	assert.True(t, table.Cell(0, "C").Equal(String("")))
	require.NoError(t, (Payload{"t": TableValue(table)}).Validate())
}
