package sqlgen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialUpdate(t *testing.T) {
	tbl := []struct {
		name    string
		update  Fields
		fields  FieldMap
		clauses []string
		values  []any
	}{
		{
			name:    "mapped columns",
			update:  Fields{{Key: "firstName", Value: "Aliya"}, {Key: "lastName", Value: "last"}},
			fields:  FieldMap{"firstName": "first_name", "lastName": "last_name"},
			clauses: []string{`"first_name"=$1`, `"last_name"=$2`},
			values:  []any{"Aliya", "last"},
		},
		{
			name:    "unmapped names pass through",
			update:  Fields{{Key: "firstName", Value: "Aliya"}, {Key: "lastName", Value: "last"}},
			fields:  FieldMap{},
			clauses: []string{`"firstName"=$1`, `"lastName"=$2`},
			values:  []any{"Aliya", "last"},
		},
		{
			name:    "nil map",
			update:  Fields{{Key: "name", Value: "C1"}},
			clauses: []string{`"name"=$1`},
			values:  []any{"C1"},
		},
		{
			name: "null clears column",
			update: Fields{
				{Key: "logoUrl", Value: nil},
				{Key: "numEmployees", Value: 10},
				{Key: "description", Value: "new"},
			},
			fields:  FieldMap{"numEmployees": "num_employees", "logoUrl": "logo_url"},
			clauses: []string{`"logo_url"=$1`, `"num_employees"=$2`, `"description"=$3`},
			values:  []any{nil, 10, "new"},
		},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, err := PartialUpdate(tt.update, tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.clauses, res.Clauses)
			assert.Equal(t, tt.values, res.Values)
			assert.Equal(t, len(tt.update)+1, res.Next())
		})
	}
}

func TestPartialUpdate_Join(t *testing.T) {
	res, err := PartialUpdate(Fields{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, nil)
	require.NoError(t, err)
	assert.Equal(t, `"a"=$1, "b"=$2`, res.Join(", "))
}

func TestPartialUpdate_Empty(t *testing.T) {
	for _, fm := range []FieldMap{nil, {}, {"numEmployees": "num_employees"}} {
		res, err := PartialUpdate(Fields{}, fm)
		require.ErrorIs(t, err, ErrEmptyInput)
		assert.True(t, res.Empty())
		assert.Empty(t, res.Values)
	}
}

func TestPartialUpdate_InvalidColumn(t *testing.T) {
	_, err := PartialUpdate(Fields{{Key: "name", Value: "x"}, {Key: `x"; DROP TABLE users; --`, Value: 1}}, nil)
	var colErr *InvalidColumnError
	require.ErrorAs(t, err, &colErr)
	assert.True(t, IsBadInput(err))

	_, err = PartialUpdate(Fields{{Key: "name", Value: "x"}}, FieldMap{"name": "bad name"})
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "bad name", colErr.Name)
}

func TestPartialUpdate_PlaceholderAlignment(t *testing.T) {
	update := Fields{}
	for i := 0; i < 25; i++ {
		update = update.Set(fmt.Sprintf("f%d", i), i*10)
	}
	res, err := PartialUpdate(update, FieldMap{"f3": "col_three"})
	require.NoError(t, err)
	require.Len(t, res.Clauses, len(update))
	require.Len(t, res.Values, len(update))
	for i, fld := range update {
		assert.Contains(t, res.Clauses[i], fmt.Sprintf("=$%d", i+1))
		assert.Equal(t, fld.Value, res.Values[i])
	}
	assert.Equal(t, `"col_three"=$4`, res.Clauses[3])
}

func TestFields_Set(t *testing.T) {
	f := Fields{}.Set("a", 1).Set("b", 2).Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, f.Keys())
	v, ok := f.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, f.Has("c"))
}
