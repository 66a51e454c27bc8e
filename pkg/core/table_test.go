package core

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, KindNumber, ParseValue("12.5").Kind())
	assert.Equal(t, KindNumber, ParseValue("-3").Kind())
	assert.Equal(t, KindBool, ParseValue("True").Kind())
	assert.Equal(t, KindString, ParseValue("TRANSFER").Kind())
	for _, s := range []string{"", "NA", "NaN", "null", " "} {
		assert.True(t, ParseValue(s).IsMissing(), s)
	}
	assert.True(t, Number(math.NaN()).IsMissing())
}

func TestValueEqualAndString(t *testing.T) {
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Bool(true)))
	assert.True(t, Null().Equal(Number(math.NaN())))
	assert.False(t, String("a").Equal(String("b")))

	assert.Equal(t, "0.1", Number(0.1).String())
	assert.Equal(t, "100", Number(100).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "", Null().String())
}

func TestColumnType(t *testing.T) {
	assert.Equal(t, TypeNumeric, NewColumn("a", []Value{Number(1), Null(), Number(2)}).Type())
	assert.Equal(t, TypeString, NewColumn("b", []Value{String("x"), Number(2)}).Type())
	assert.Equal(t, TypeBoolean, NewColumn("c", []Value{Bool(true), Bool(false)}).Type())
	assert.Equal(t, TypeUnknown, NewColumn("d", []Value{Null(), Null()}).Type())
}

func TestNewTable(t *testing.T) {
	_, err := NewTable(NewColumn("a", []Value{Number(1)}), NewColumn("a", []Value{Number(2)}))
	assert.True(t, errors.Is(err, ErrSchema))

	_, err = NewTable(NewColumn("a", []Value{Number(1)}), NewColumn("b", []Value{}))
	assert.True(t, errors.Is(err, ErrSchema))

	table, err := NewTable(
		NewColumn("a", []Value{Number(1), Number(2), Number(3)}),
		NewColumn("b", []Value{String("x"), String("y"), String("z")}),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, []string{"a", "b"}, table.Names())

	taken := table.Take([]int{2, 0})
	assert.Equal(t, []Value{Number(3), String("z")}, taken.Row(0))
	assert.Equal(t, []Value{Number(1), String("x")}, taken.Row(1))

	/*
		WithColumn replaces in place and appends new names at the end
	*/
	replaced, err := table.WithColumn(NewColumn("a", []Value{Null(), Null(), Null()}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, replaced.Names())
	assert.Equal(t, 3, replaced.ColumnAt(0).MissingCount())
	assert.Equal(t, 0, table.ColumnAt(0).MissingCount())

	appended, err := table.WithColumn(NewColumn("c", []Value{Bool(true), Bool(true), Bool(false)}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, appended.Names())

	_, err = table.WithColumn(NewColumn("d", []Value{Null()}))
	assert.True(t, errors.Is(err, ErrSchema))

	empty := table.Without("a", "b")
	assert.Equal(t, 0, empty.NumCols())
	assert.Equal(t, 3, empty.NumRows())
}
