package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule checks a single field value.
type Rule interface {
	Check(value any) error
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(value any) error

// Check implements Rule.
func (f RuleFunc) Check(value any) error {
	return f(value)
}

// Object is the declarative rule schema: one rule per field. Fields with a
// nil rule are skipped.
type Object map[string]Rule

// Validate implements Schema.
func (o Object) Validate(values Values) Violations {
	out := Violations{}
	for name, rule := range o {
		if rule == nil {
			continue
		}
		if err := rule.Check(values[name]); err != nil {
			out[name] = err.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// All combines rules; the first failure wins.
func All(rules ...Rule) Rule {
	return RuleFunc(func(value any) error {
		for _, rule := range rules {
			if rule == nil {
				continue
			}
			if err := rule.Check(value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Any accepts every value. Use it to mark fields whose display value is
// presentational-only and intentionally excluded from checks.
func Any() Rule {
	return RuleFunc(func(any) error {
		return nil
	})
}

// Required rejects nil, empty strings, and whitespace-only strings.
func Required() Rule {
	return RuleFunc(func(value any) error {
		if value == nil {
			return fmt.Errorf("is required")
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return fmt.Errorf("is required")
		}
		return nil
	})
}

// MinLen rejects strings shorter than n characters. Non-string and absent
// values pass; combine with Required when presence matters.
func MinLen(n int) Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if len([]rune(s)) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	})
}

// MaxLen rejects strings longer than n characters.
func MaxLen(n int) Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if len([]rune(s)) > n {
			return fmt.Errorf("must be at most %d characters", n)
		}
		return nil
	})
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email rejects strings that do not look like an address. Empty values pass.
func Email() Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if !emailPattern.MatchString(s) {
			return fmt.Errorf("must be a valid email address")
		}
		return nil
	})
}

// OneOf rejects string values outside the allowed set. Empty values pass.
func OneOf(options ...string) Rule {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if _, ok := allowed[s]; !ok {
			return fmt.Errorf("must be one of %s", strings.Join(options, ", "))
		}
		return nil
	})
}

// Matches rejects string values that do not match the pattern. The pattern
// must compile; a bad pattern is a programmer error and panics at
// construction, matching regexp.MustCompile.
func Matches(pattern string) Rule {
	re := regexp.MustCompile(pattern)
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return fmt.Errorf("has an invalid format")
		}
		return nil
	})
}
