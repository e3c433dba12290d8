package services

import (
	"errors"
	"fmt"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/database"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// Column maps and filter vocabularies, one per table. These are the only
// source of column names in generated SQL.
var (
	CompanyFields = sqlgen.FieldMap{
		"numEmployees": "num_employees",
		"logoUrl":      "logo_url",
	}
	CompanyFilters = sqlgen.RuleSet{
		"nameLike":     {Column: "name", Op: sqlgen.OpContains},
		"minEmployees": {Column: "num_employees", Op: sqlgen.OpAtLeast, Range: "employees"},
		"maxEmployees": {Column: "num_employees", Op: sqlgen.OpAtMost, Range: "employees"},
	}

	JobFields = sqlgen.FieldMap{
		"companyHandle": "company_handle",
	}
	JobFilters = sqlgen.RuleSet{
		"title":     {Column: "title", Op: sqlgen.OpContains},
		"minSalary": {Column: "salary", Op: sqlgen.OpAtLeast, Range: "salary"},
		"hasEquity": {Column: "equity", Op: sqlgen.OpPositive},
	}

	UserFields = sqlgen.FieldMap{
		"firstName": "first_name",
		"lastName":  "last_name",
		"isAdmin":   "is_admin",
	}
)

// immutable fields are rejected by the update path whatever the request layer let through
var (
	companyImmutable = []string{"handle"}
	jobImmutable     = []string{"id", "companyHandle"}
	userImmutable    = []string{"username"}
)

func checkImmutable(fields sqlgen.Fields, immutable []string) error {
	for _, k := range immutable {
		if fields.Has(k) {
			return apperr.BadRequestf("instance.%s cannot be changed", k)
		}
	}
	return nil
}

// storeError turns a classified store failure into a client error where one applies.
func storeError(err error, op string) error {
	err = database.Classify(err)
	if errors.Is(err, database.ErrInvalidData) {
		var se *database.StoreError
		msg := "invalid data"
		if errors.As(err, &se) && se.Constraint != "" {
			msg = "invalid data, violates " + se.Constraint
		}
		return apperr.Wrap(apperr.KindBadRequest, err, msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
