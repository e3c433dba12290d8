package dtos

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/justsurfingit/jobly/internal/apperr"
)

func init() {
	// report json/form names instead of Go field names in violations
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	}
}

// DecodeJSON strictly decodes a JSON object body into dst and validates it.
// Every failure is a bad request listing the violations.
func DecodeJSON(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.BadRequest(decodeMessage(err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperr.BadRequest("instance has trailing data after the JSON object")
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperr.BadRequest(Violations(err)...)
	}
	return nil
}

// Violations turns a validation error into one message per failed field.
func Violations(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	res := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, violation(fe))
	}
	return res
}

func violation(fe validator.FieldError) string {
	field := "instance." + fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("instance requires property %q", fe.Field())
	case "min", "max":
		bound := "minimum"
		if fe.Tag() == "max" {
			bound = "maximum"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s does not meet %s length of %s", field, bound, fe.Param())
		}
		return fmt.Sprintf("%s must meet %s of %s", field, bound, fe.Param())
	case "email":
		return fmt.Sprintf("%s does not conform to the \"email\" format", field)
	case "url":
		return fmt.Sprintf("%s does not conform to the \"uri\" format", field)
	case "numeric":
		return fmt.Sprintf("%s is not a numeric string", field)
	case "lowercase":
		return fmt.Sprintf("%s must be lowercase", field)
	}
	return fmt.Sprintf("%s failed on the %q check", field, fe.Tag())
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("instance.%s is not of a type(s) %s", typeErr.Field, jsonType(typeErr.Type))
	case errors.As(err, &syntaxErr):
		return "instance is not valid JSON: " + syntaxErr.Error()
	case errors.Is(err, io.EOF):
		return "instance is empty, expected an object"
	}
	// encoding/json has no typed error for unknown fields
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return "instance is not allowed to have the additional property " + name
	}
	return "instance is invalid: " + err.Error()
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return t.String()
}
