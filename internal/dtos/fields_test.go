package dtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

func messages(t *testing.T, err error) []string {
	t.Helper()
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.KindBadRequest, e.Kind)
	return e.Messages
}

func TestBindPatch(t *testing.T) {
	var req CompanyUpdateRequest
	fields, err := BindPatch([]byte(`{"numEmployees": 10, "logoUrl": null, "name": "C1-new"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, sqlgen.Fields{
		{Key: "numEmployees", Value: 10},
		{Key: "logoUrl", Value: nil},
		{Key: "name", Value: "C1-new"},
	}, fields)
}

func TestBindPatch_Empty(t *testing.T) {
	var req JobUpdateRequest
	fields, err := BindPatch([]byte(`{}`), &req)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestBindPatch_Rejects(t *testing.T) {
	tbl := []struct {
		name string
		body string
		dst  Patch
		msg  string
	}{
		{"handle change", `{"handle": "c2"}`, &CompanyUpdateRequest{},
			`instance is not allowed to have the additional property "handle"`},
		{"company change", `{"title": "x", "companyHandle": "c2"}`, &JobUpdateRequest{},
			`instance is not allowed to have the additional property "companyHandle"`},
		{"id change", `{"id": 111}`, &JobUpdateRequest{},
			`instance is not allowed to have the additional property "id"`},
		{"wrong type", `{"salary": "abcdefg"}`, &JobUpdateRequest{},
			"instance.salary is not of a type(s) integer"},
		{"negative", `{"numEmployees": -1}`, &CompanyUpdateRequest{},
			"instance.numEmployees must meet minimum of 0"},
		{"bad url", `{"logoUrl": "not a url"}`, &CompanyUpdateRequest{},
			`instance.logoUrl does not conform to the "uri" format`},
		{"bad equity", `{"equity": "lots"}`, &JobUpdateRequest{},
			"instance.equity is not a numeric string"},
		{"bad email", `{"email": "nope-at-all"}`, &UserUpdateRequest{},
			`instance.email does not conform to the "email" format`},
		{"short password", `{"password": "abc"}`, &UserUpdateRequest{},
			"instance.password does not meet minimum length of 5"},
		{"array", `[1, 2]`, &CompanyUpdateRequest{},
			"instance.is not of a type(s) object"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BindPatch([]byte(tt.body), tt.dst)
			msgs := messages(t, err)
			require.NotEmpty(t, msgs)
			if tt.name == "array" {
				assert.Contains(t, msgs[0], "object")
				return
			}
			assert.Equal(t, tt.msg, msgs[0])
		})
	}
}

func TestDecodeJSON_Required(t *testing.T) {
	var req CompanyCreationRequest
	err := DecodeJSON([]byte(`{"handle": "new", "logoUrl": "http://new.img"}`), &req)
	msgs := messages(t, err)
	assert.ElementsMatch(t, []string{
		`instance requires property "name"`,
		`instance requires property "description"`,
	}, msgs)
}

func TestDecodeJSON_Embedded(t *testing.T) {
	var req UserCreationRequest
	err := DecodeJSON([]byte(`{"username": "u-new", "firstName": "F", "lastName": "L",
		"password": "password-new", "email": "new@email.com", "isAdmin": true}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "u-new", req.Username)
	assert.True(t, req.IsAdmin)
}

func TestDecodeJSON_Trailing(t *testing.T) {
	var req UserAuthRequest
	err := DecodeJSON([]byte(`{"username": "u1", "password": "p"} {"x": 1}`), &req)
	msgs := messages(t, err)
	assert.Contains(t, msgs[0], "trailing")
}

func TestObjectKeys(t *testing.T) {
	keys, err := ObjectKeys([]byte(`{"b": {"nested": [1, {"z": 2}]}, "a": null, "c": "x", "b": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	_, err = ObjectKeys([]byte(`"string"`))
	require.Error(t, err)
}

func TestBindFilter(t *testing.T) {
	fields, err := BindFilter("minSalary=110&title=2&title=3", JobFilterKeys)
	require.NoError(t, err)
	assert.Equal(t, sqlgen.Fields{{Key: "minSalary", Value: "110"}, {Key: "title", Value: "2"}}, fields)

	fields, err = BindFilter("nameLike=a%20b", CompanyFilterKeys)
	require.NoError(t, err)
	assert.Equal(t, sqlgen.Fields{{Key: "nameLike", Value: "a b"}}, fields)

	_, err = BindFilter("name=tester&title=x", JobFilterKeys)
	assert.Equal(t, []string{`instance is not allowed to have the additional property "name"`}, messages(t, err))
}

func TestQueryKeys(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c d"}, QueryKeys("b=1&a=2&&b=3&c+d=4&=5"))
	assert.Empty(t, QueryKeys(""))
}
