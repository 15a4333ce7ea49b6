// Package schema has the models, enums and status types shared by all parts of reportboard.
package schema

// FieldKind is the type class inferred for a column from its header.
type FieldKind string

// All field kinds supported.
const (
	DateKind     FieldKind = "date"
	NumericKind  FieldKind = "numeric"
	CategoryKind FieldKind = "category"
	PlainKind    FieldKind = "plain" // default
)

// ValidFieldKinds lists all valid field kinds.
var ValidFieldKinds = map[FieldKind]struct{}{
	DateKind:     {},
	NumericKind:  {},
	CategoryKind: {},
	PlainKind:    {},
}

// FieldDescriptor maps a source column header to its record key and kind.
type FieldDescriptor struct {
	Header string    `json:"header"` // Header as it appeared in the source
	Key    string    `json:"key"`    // Normalized, collision-free record key
	Kind   FieldKind `json:"kind"`   // Inferred type class
}

// FieldRoles names the record keys that play a part in filtering and aggregation.
// An empty key means no field was found for that role.
type FieldRoles struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Latency  string `json:"latency"`
}

// Keys returns the record keys of the descriptors, in column order.
func Keys(fields []FieldDescriptor) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// Headers returns the source headers of the descriptors, in column order.
func Headers(fields []FieldDescriptor) []string {
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Header
	}
	return headers
}
