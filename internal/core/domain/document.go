package domain

import "time"

// Document is one persisted record in a schemaless collection. Fields holds
// the declared resource attributes; ID and CreatedAt are server-assigned and
// never taken from client input.
type Document struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
}

// Payload flattens the document into the shape serialized to clients:
// the declared fields plus "id" and an RFC 3339 "createdAt".
func (d *Document) Payload() map[string]any {
	out := make(map[string]any, len(d.Fields)+2)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID
	out["createdAt"] = d.CreatedAt.UTC().Format(time.RFC3339)
	return out
}

// Clone returns a deep-enough copy: the fields map is copied, values are shared.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	return &Document{ID: d.ID, Fields: fields, CreatedAt: d.CreatedAt}
}
