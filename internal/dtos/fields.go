package dtos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// Patch is a partial-update body that can report the typed value behind each of its JSON keys.
type Patch interface {
	Value(key string) (any, bool)
}

// BindPatch decodes and validates a partial-update body into dst and returns the
// fields present in the body, in body order. An explicit null is kept as a nil value.
func BindPatch(body []byte, dst Patch) (sqlgen.Fields, error) {
	if err := DecodeJSON(body, dst); err != nil {
		return nil, err
	}
	keys, err := ObjectKeys(body)
	if err != nil {
		return nil, apperr.BadRequest("instance is not valid JSON: " + err.Error())
	}
	res := make(sqlgen.Fields, 0, len(keys))
	for _, k := range keys {
		v, ok := dst.Value(k)
		if !ok {
			return nil, apperr.BadRequestf("instance is not allowed to have the additional property %q", k)
		}
		res = res.Set(k, v)
	}
	return res, nil
}

// ObjectKeys returns the top-level keys of a JSON object in document order, without duplicates.
func ObjectKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		// skip the value, whatever its shape
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// BindFilter checks a raw query string against the allowed filter keys and returns
// the raw values in query order. The first value wins for repeated keys.
// Type coercion is left to the predicate builder.
func BindFilter(rawQuery string, allowed []string) (sqlgen.Fields, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, apperr.BadRequest("instance is not a valid query: " + err.Error())
	}

	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}

	var res sqlgen.Fields
	var violations []string
	for _, key := range QueryKeys(rawQuery) {
		if !known[key] {
			violations = append(violations, fmt.Sprintf("instance is not allowed to have the additional property %q", key))
			continue
		}
		res = res.Set(key, values.Get(key))
	}
	if len(violations) > 0 {
		return nil, apperr.BadRequest(violations...)
	}
	return res, nil
}

// QueryKeys returns the distinct keys of a raw query string in the order they appear.
func QueryKeys(rawQuery string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		k, _, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil || key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
