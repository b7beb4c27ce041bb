// Package normalize maps raw AI-extracted key/value pairs onto the fixed
// per-document-type schema: canonical field names, cleaned values, and an
// ordered list of validation issues.
package normalize

import (
	"errors"
	"strings"

	"intake-backend/internal/schema"
)

// ErrMalformedExtraction is returned when the raw payload is not a mapping.
var ErrMalformedExtraction = errors.New("malformed extraction payload")

// Issue reasons attached to validation issues.
const (
	IssueMissing       = "missing"
	IssueInvalidFormat = "invalid_format"
)

// Issue records a per-field validation failure.
type Issue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Normalize maps rawFields onto the canonical schema for docType.
//
// For each canonical field, the first matching alias present in rawFields
// wins (case-insensitive, spaces/hyphens folded to underscores). Per-field
// cleaning failures never abort the whole call: they degrade to an
// invalid_format issue and the field is omitted. Required fields with no
// value produce a missing issue. Issues preserve schema declaration order,
// required fields first.
//
// The function is pure: the same input always yields the same fields and
// issues.
func Normalize(docType schema.DocType, rawFields any) (map[string]any, []Issue, error) {
	s, err := schema.Lookup(docType)
	if err != nil {
		return nil, nil, err
	}

	rawMap, ok := rawFields.(map[string]any)
	if !ok {
		return nil, nil, ErrMalformedExtraction
	}

	folded := make(map[string]any, len(rawMap))
	for k, v := range rawMap {
		fk := foldKey(k)
		if _, exists := folded[fk]; !exists {
			folded[fk] = v
		}
	}

	fields := make(map[string]any)
	var issues []Issue

	for _, f := range s.Fields() {
		raw, found := lookupAlias(folded, f)
		if !found {
			if s.IsRequired(f.Name) {
				issues = append(issues, Issue{Field: f.Name, Issue: IssueMissing})
			}
			continue
		}

		cleaned, ok := cleanValue(f, raw)
		if !ok {
			issues = append(issues, Issue{Field: f.Name, Issue: IssueInvalidFormat})
			continue
		}
		fields[f.Name] = cleaned
	}

	return fields, issues, nil
}

// foldKey lowercases a raw key and folds separators so that "Full Name",
// "full-name" and "full_name" all match the same alias.
func foldKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// lookupAlias returns the first alias value present and non-empty, honoring
// the declared priority order.
func lookupAlias(folded map[string]any, f schema.Field) (any, bool) {
	for _, alias := range f.Aliases {
		v, ok := folded[alias]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}
