package sqlgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Op is a filter operator. The operator also decides how the raw filter value is coerced.
type Op int

const (
	// OpContains is a case-insensitive substring match, the value is a string wrapped in %...%.
	OpContains Op = iota
	// OpAtLeast is "column >= value" for a non-negative integer.
	OpAtLeast
	// OpAtMost is "column <= value" for a non-negative integer.
	OpAtMost
	// OpPositive is "column > 0" when the value is true; false adds no predicate.
	OpPositive
)

func (o Op) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpAtLeast:
		return "at-least"
	case OpAtMost:
		return "at-most"
	case OpPositive:
		return "positive"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Rule binds a filter key to a column and an operator. Rules sharing a non-empty
// Range form a bounded range; the OpAtLeast side must not exceed the OpAtMost side.
type Rule struct {
	Column string
	Op     Op
	Range  string
}

// RuleSet is the closed filter vocabulary of one table.
type RuleSet map[string]Rule

// Keys returns the filter keys known to the rule set.
func (rs RuleSet) Keys() []string {
	res := make([]string, 0, len(rs))
	for k := range rs {
		res = append(res, k)
	}
	return res
}

type coerced struct {
	key   string
	rule  Rule
	value any
}

// Predicates builds the WHERE predicates for filter, joined by the caller with AND.
//
// Values are coerced and ranges validated before any fragment is produced, so an
// error never comes with partial output. The result may be empty (e.g. a lone
// false OpPositive), callers must then drop the WHERE clause instead of matching nothing.
func Predicates(filter Fields, rules RuleSet) (Fragments, error) {
	items := make([]coerced, 0, len(filter))
	for _, fld := range filter {
		rule, ok := rules[fld.Key]
		if !ok {
			return Fragments{}, &UnsupportedFilterKeyError{Key: fld.Key}
		}
		v, err := coerce(rule.Op, fld.Value)
		if err != nil {
			return Fragments{}, &InvalidValueError{Key: fld.Key, Value: fld.Value, Err: err}
		}
		items = append(items, coerced{key: fld.Key, rule: rule, value: v})
	}

	if err := checkRanges(items); err != nil {
		return Fragments{}, err
	}

	res := Fragments{Clauses: []string{}, Values: []any{}}
	for _, it := range items {
		col, err := quoteIdent(it.rule.Column)
		if err != nil {
			return Fragments{}, err
		}
		switch it.rule.Op {
		case OpContains:
			res.Clauses = append(res.Clauses, col+" ILIKE "+placeholder(res.Next()))
			res.Values = append(res.Values, it.value)
		case OpAtLeast:
			res.Clauses = append(res.Clauses, col+" >= "+placeholder(res.Next()))
			res.Values = append(res.Values, it.value)
		case OpAtMost:
			res.Clauses = append(res.Clauses, col+" <= "+placeholder(res.Next()))
			res.Values = append(res.Values, it.value)
		case OpPositive:
			if it.value.(bool) {
				res.Clauses = append(res.Clauses, col+" > 0")
			}
		}
	}
	return res, nil
}

func checkRanges(items []coerced) error {
	type bounds struct {
		min, max       int64
		hasMin, hasMax bool
	}
	ranges := map[string]*bounds{}
	var order []string
	for _, it := range items {
		if it.rule.Range == "" || (it.rule.Op != OpAtLeast && it.rule.Op != OpAtMost) {
			continue
		}
		b, ok := ranges[it.rule.Range]
		if !ok {
			b = &bounds{}
			ranges[it.rule.Range] = b
			order = append(order, it.rule.Range)
		}
		if it.rule.Op == OpAtLeast {
			b.min, b.hasMin = it.value.(int64), true
		} else {
			b.max, b.hasMax = it.value.(int64), true
		}
	}
	for _, name := range order {
		b := ranges[name]
		if b.hasMin && b.hasMax && b.min > b.max {
			return &InvalidRangeError{Range: name, Min: b.min, Max: b.max}
		}
	}
	return nil
}

func coerce(op Op, v any) (any, error) {
	switch op {
	case OpContains:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return "%" + s + "%", nil
	case OpAtLeast, OpAtMost:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.New("must be greater than or equal to 0")
		}
		return n, nil
	case OpPositive:
		return toBool(v)
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		res, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", b)
		}
		return res, nil
	}
	return false, fmt.Errorf("expected boolean, got %T", v)
}
