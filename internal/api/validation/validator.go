// Package validation evaluates a resource descriptor's declarative field
// rules against a request payload. Failures are collected for every violated
// field, never short-circuited, so a 422 response always lists the complete
// set of problems.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tkaing/ecologie-api/internal/core/domain"
)

// frPhone matches French numbers: +33/0033/0 prefix followed by nine digits,
// mobile or landline, separators stripped beforehand.
var frPhone = regexp.MustCompile(`^(?:\+33|0033|0)[1-9]\d{8}$`)

var phoneSeparators = strings.NewReplacer(" ", "", ".", "", "-", "")

// Validator wraps go-playground/validator as the rule engine underneath the
// descriptor schemas.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate checks payload against every declared field of desc, in schema
// order. A nil or empty result means the payload is accepted.
func (fv *Validator) Validate(desc domain.Descriptor, payload map[string]any) []domain.FieldError {
	var failures []domain.FieldError
	for _, f := range desc.Fields {
		if !fv.check(f.Rule, payload[f.Attribute]) {
			failures = append(failures, domain.FieldError{Attribute: f.Attribute, Message: f.Message})
		}
	}
	return failures
}

func (fv *Validator) check(rule domain.Rule, value any) bool {
	switch rule {
	case domain.RuleNotBlank:
		return notBlank(value)
	case domain.RuleEmail:
		s, ok := asString(value)
		return ok && fv.v.Var(s, "required,email") == nil
	case domain.RulePhone:
		s, ok := asString(value)
		return ok && frPhone.MatchString(phoneSeparators.Replace(s))
	case domain.RuleLatLong:
		return fv.latLong(value)
	case domain.RuleInteger:
		return isInteger(value)
	case domain.RuleStringArray:
		return isStringArray(value)
	}
	return false
}
