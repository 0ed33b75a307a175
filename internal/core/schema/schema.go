// Package schema declares the canonical resource descriptors served by the
// API. Each descriptor drives the generic validation, persistence and routing
// stack; adding a resource means adding a descriptor here.
package schema

import "github.com/tkaing/ecologie-api/internal/core/domain"

var Associations = domain.Descriptor{
	Name:     "associations",
	Singular: "association",
	Fields: []domain.Field{
		{Attribute: "email", Rule: domain.RuleEmail, Message: domain.MsgEmail},
		{Attribute: "name", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "birthdate", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "identifier", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "phone", Rule: domain.RulePhone, Message: domain.MsgPhone},
		{Attribute: "location", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "state", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
	},
}

var Courses = domain.Descriptor{
	Name:     "courses",
	Singular: "course",
	Fields: []domain.Field{
		{Attribute: "name", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "startOn", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "endOn", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "location", Rule: domain.RuleLatLong, Message: domain.MsgLocation},
		{Attribute: "address", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "zip", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "city", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "rating", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "glassWaste", Rule: domain.RuleInteger, Message: domain.MsgInteger},
		{Attribute: "plasticWaste", Rule: domain.RuleInteger, Message: domain.MsgInteger},
		{Attribute: "foodWaste", Rule: domain.RuleInteger, Message: domain.MsgInteger},
		{Attribute: "otherWaste", Rule: domain.RuleInteger, Message: domain.MsgInteger},
		{Attribute: "association", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
	},
}

var Events = domain.Descriptor{
	Name:     "events",
	Singular: "event",
	Fields: []domain.Field{
		{Attribute: "name", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "capacity", Rule: domain.RuleInteger, Message: domain.MsgInteger},
		{Attribute: "deadline", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "startOn", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "endOn", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "categories", Rule: domain.RuleStringArray, Message: domain.MsgArray},
		{Attribute: "location", Rule: domain.RuleLatLong, Message: domain.MsgLocation},
	},
}

var Members = domain.Descriptor{
	Name:          "members",
	Singular:      "member",
	Credential:    true,
	GeneratedCode: true,
	Fields: []domain.Field{
		{Attribute: "email", Rule: domain.RuleEmail, Message: domain.MsgEmail},
		{Attribute: "role", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "association", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
	},
}

var Users = domain.Descriptor{
	Name:       "users",
	Singular:   "user",
	Credential: true,
	Fields: []domain.Field{
		{Attribute: "email", Rule: domain.RuleEmail, Message: domain.MsgEmail},
		{Attribute: "firstname", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "lastname", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "birthdate", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
		{Attribute: "phone", Rule: domain.RulePhone, Message: domain.MsgPhone},
		{Attribute: "location", Rule: domain.RuleLatLong, Message: domain.MsgLocation},
	},
}

var Themes = domain.Descriptor{
	Name:     "themes",
	Singular: "theme",
	Fields: []domain.Field{
		{Attribute: "name", Rule: domain.RuleNotBlank, Message: domain.MsgNotBlank},
	},
}

// All returns the descriptors in route-registration order.
func All() []domain.Descriptor {
	return []domain.Descriptor{Associations, Courses, Events, Members, Users, Themes}
}
