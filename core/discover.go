package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/reportboard/schema"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Role lookups. Exact keys win over the kind or substring fallbacks.
const (
	dateRoleKey     = "date"
	categoryRoleKey = "category"
	statusRoleKey   = "status"
)

var latencyExactKeys = []string{"response_time", "responsetime", "latency", "duration"}
var latencyHints = []string{"response", "latency", "duration"}

// KeyFor derives the record key for a header: lowercased, trimmed, with runs
// of whitespace replaced by a single underscore.
func KeyFor(header string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(header)), "_")
}

// KindFor infers the field kind from substrings of the header, case-insensitively.
// The first matching rule wins: date, then time or number, then category or type.
func KindFor(header string) schema.FieldKind {
	h := strings.ToLower(header)
	switch {
	case strings.Contains(h, "date"):
		return schema.DateKind
	case strings.Contains(h, "time"), strings.Contains(h, "number"):
		return schema.NumericKind
	case strings.Contains(h, "category"), strings.Contains(h, "type"):
		return schema.CategoryKind
	default:
		return schema.PlainKind
	}
}

// DiscoverFields derives one descriptor per distinct header, preserving first-seen order.
// Distinct headers that normalize to the same key get numeric suffixes (_2, _3, ...)
// and blank headers get a positional key (column_N).
func DiscoverFields(headers []string) []schema.FieldDescriptor {
	fields := make([]schema.FieldDescriptor, 0, len(headers))
	seenHeaders := make(map[string]struct{}, len(headers))
	usedKeys := make(map[string]struct{}, len(headers)+1)
	usedKeys[schema.RecordIDKey] = struct{}{}

	for i, header := range headers {
		if _, dup := seenHeaders[header]; dup {
			continue
		}
		seenHeaders[header] = struct{}{}

		base := KeyFor(header)
		if base == "" {
			base = fmt.Sprintf("column_%d", i+1)
		}
		key := base
		for n := 2; ; n++ {
			if _, taken := usedKeys[key]; !taken {
				break
			}
			key = fmt.Sprintf("%s_%d", base, n)
		}
		usedKeys[key] = struct{}{}

		fields = append(fields, schema.FieldDescriptor{
			Header: header,
			Key:    key,
			Kind:   KindFor(header),
		})
	}
	return fields
}

// ResolveRoles picks the fields used for date filtering, category filtering,
// success counting and latency averaging.
func ResolveRoles(fields []schema.FieldDescriptor) schema.FieldRoles {
	var roles schema.FieldRoles

	roles.Date = findKey(fields, dateRoleKey, func(f schema.FieldDescriptor) bool {
		return f.Kind == schema.DateKind
	})
	roles.Category = findKey(fields, categoryRoleKey, func(f schema.FieldDescriptor) bool {
		return f.Kind == schema.CategoryKind
	})
	roles.Status = findKey(fields, statusRoleKey, func(f schema.FieldDescriptor) bool {
		return strings.Contains(f.Key, statusRoleKey)
	})

	for _, exact := range latencyExactKeys {
		if hasKey(fields, exact) {
			roles.Latency = exact
			return roles
		}
	}
	roles.Latency = findKey(fields, "", func(f schema.FieldDescriptor) bool {
		for _, hint := range latencyHints {
			if strings.Contains(f.Key, hint) {
				return true
			}
		}
		return false
	})
	return roles
}

// findKey returns exact if present, else the first field accepted by fallback, else "".
func findKey(fields []schema.FieldDescriptor, exact string, fallback func(schema.FieldDescriptor) bool) string {
	if exact != "" && hasKey(fields, exact) {
		return exact
	}
	for _, f := range fields {
		if fallback(f) {
			return f.Key
		}
	}
	return ""
}

func hasKey(fields []schema.FieldDescriptor, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}
