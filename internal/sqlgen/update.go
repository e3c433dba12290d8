package sqlgen

// PartialUpdate builds the SET list of an UPDATE statement from update.
//
// Every entry produces one `"column"=$n` clause, in the order of update, with n
// starting at 1. A nil value is kept and clears the column. The caller binds
// its key column to placeholder Fragments.Next().
func PartialUpdate(update Fields, fields FieldMap) (Fragments, error) {
	if len(update) == 0 {
		return Fragments{}, ErrEmptyInput
	}

	res := Fragments{
		Clauses: make([]string, 0, len(update)),
		Values:  make([]any, 0, len(update)),
	}
	for _, fld := range update {
		col, err := quoteIdent(fields.Column(fld.Key))
		if err != nil {
			return Fragments{}, err
		}
		res.Clauses = append(res.Clauses, col+"="+placeholder(res.Next()))
		res.Values = append(res.Values, fld.Value)
	}
	return res, nil
}
