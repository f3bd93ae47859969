package validator

import (
	"strings"
)

// PathSeparator separates segments of a field path into a nested body.
const PathSeparator = "."

// ValidationError is a single failed check on a request field.
type ValidationError struct {
	Field   string // dotted path into the request body
	Message string // human-readable failure message
}

// ValidationErrors is an ordered collection of validation failures.
type ValidationErrors []ValidationError

// Map folds the failures into a field→messages map. Identical
// (field, message) pairs are deduplicated; first-seen order is preserved
// within each field. Returns nil when there are no failures.
func (e ValidationErrors) Map() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		if contains(out[fe.Field], fe.Message) {
			continue
		}
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Rule evaluates declarative checks against a decoded request body and
// reports zero or more failures.
type Rule func(body map[string]any) ValidationErrors

// Check inspects a single field value and returns a failure message, or
// the empty string if the value passes. The present flag reports whether
// the field exists in the body at all.
type Check func(value any, present bool) string

// Field builds a rule that runs checks against the value at the given
// dotted path. Value checks are skipped for absent fields; combine with
// Required to reject absence itself.
func Field(path string, checks ...Check) Rule {
	return func(body map[string]any) ValidationErrors {
		value, present := Lookup(body, path)

		var errs ValidationErrors
		for _, check := range checks {
			if msg := check(value, present); msg != "" {
				errs = append(errs, ValidationError{Field: path, Message: msg})
			}
		}
		return errs
	}
}

// Apply runs all rules against the body and accumulates failures in rule
// order.
func Apply(body map[string]any, rules ...Rule) ValidationErrors {
	var errs ValidationErrors
	for _, rule := range rules {
		errs = append(errs, rule(body)...)
	}
	return errs
}

// Lookup resolves a dotted path into a nested body. Returns the value and
// whether the full path exists.
func Lookup(body map[string]any, path string) (any, bool) {
	segments := strings.Split(path, PathSeparator)
	var current any = body
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
