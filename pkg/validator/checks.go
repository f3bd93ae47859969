package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

// Required fails when the field is absent from the body or is nil.
func Required() Check {
	return func(value any, present bool) string {
		if !present || value == nil {
			return "is required"
		}
		return ""
	}
}

// NonEmpty fails when the field is present but is an empty string.
func NonEmpty() Check {
	return stringCheck(func(s string) string {
		if s == "" {
			return "must not be empty"
		}
		return ""
	})
}

// MinLength fails when the string value is shorter than n characters.
func MinLength(n int) Check {
	return stringCheck(func(s string) string {
		if utf8.RuneCountInString(s) < n {
			return fmt.Sprintf("must be at least %d characters long", n)
		}
		return ""
	})
}

// MaxLength fails when the string value is longer than n characters.
func MaxLength(n int) Check {
	return stringCheck(func(s string) string {
		if utf8.RuneCountInString(s) > n {
			return fmt.Sprintf("must be at most %d characters long", n)
		}
		return ""
	})
}

// Email fails when the string value is not a plausible email address.
func Email() Check {
	return stringCheck(func(s string) string {
		if !emailRegex.MatchString(s) {
			return "must be a valid email address"
		}
		return ""
	})
}

// Matches fails with the given message when the string value does not
// match the pattern.
func Matches(pattern *regexp.Regexp, message string) Check {
	return stringCheck(func(s string) string {
		if !pattern.MatchString(s) {
			return message
		}
		return ""
	})
}

// OneOf fails when the string value is not a member of the allowed set.
func OneOf(allowed ...string) Check {
	return stringCheck(func(s string) string {
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return fmt.Sprintf("must be one of: %s", joinQuoted(allowed))
	})
}

// stringCheck wraps a string predicate into a Check. Absent fields are
// skipped; non-string values fail with a type message.
func stringCheck(fn func(string) string) Check {
	return func(value any, present bool) string {
		if !present {
			return ""
		}
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		return fn(s)
	}
}

func joinQuoted(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
