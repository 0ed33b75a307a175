package domain

import (
	"math"
	"strconv"
	"strings"
)

// Rule identifies one validation rule applied to a single field.
type Rule int

const (
	RuleNotBlank Rule = iota
	RuleEmail
	RulePhone
	RuleLatLong
	RuleInteger
	RuleStringArray
)

// Validation messages, kept in French as the API has always spoken to a
// French-speaking frontend.
const (
	MsgNotBlank = "Ce champ doit obligatoirement être rempli."
	MsgEmail    = "Ce champ doit être un e-mail valide."
	MsgPhone    = "Ce champ doit être un numéro français."
	MsgLocation = "Ce champ doit être une position valide."
	MsgInteger  = "Ce champ doit obligatoirement être un entier."
	MsgArray    = "Ce champ doit être une liste non vide."
)

// Field declares one attribute of a resource: its name, the rule its value
// must satisfy, and the message returned when it does not.
type Field struct {
	Attribute string
	Rule      Rule
	Message   string
}

// FieldError is a single validation failure, serialized in the 422 envelope.
type FieldError struct {
	Attribute string `json:"attribute"`
	Message   string `json:"message"`
}

// Descriptor bundles everything the generic CRUD stack needs to serve one
// resource type: route segment / collection name, singular label used as the
// response wrapper key, the ordered field schema, and whether the resource
// carries server-managed credentials (members, users).
type Descriptor struct {
	Name     string
	Singular string
	Fields   []Field
	// Credential marks resources whose documents carry a stored password
	// hash and expose a login route (members, users).
	Credential bool
	// GeneratedCode marks credential resources whose password is generated
	// server-side at creation and returned once as an onboarding code
	// (members). When false, the client may optionally supply one (users).
	GeneratedCode bool
}

// PasswordField is the stored attribute holding the credential hash. It is
// never part of the declared schema and never serialized to clients.
const PasswordField = "password"

// Extract picks the declared attributes out of a request payload, trimming
// string values and coercing Integer-rule fields to int64. Attributes absent
// from the payload are left out; undeclared payload keys are dropped, which
// keeps identifiers, createdAt and credential hashes out of client control.
func (d Descriptor) Extract(payload map[string]any) map[string]any {
	fields := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		v, ok := payload[f.Attribute]
		if !ok {
			continue
		}
		switch f.Rule {
		case RuleInteger:
			if n, ok := toInt64(v); ok {
				fields[f.Attribute] = n
				continue
			}
		default:
			if s, ok := v.(string); ok {
				fields[f.Attribute] = strings.TrimSpace(s)
				continue
			}
		}
		fields[f.Attribute] = v
	}
	return fields
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		if parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
