package form

import "regexp"

// EmailRegex is the fixed email-format check applied by every entity form.
var EmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule is one local validation check with its user-facing message.
// Rules run in order; the first failing rule's message wins.
type Rule struct {
	Required  bool
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
	Custom    func(v Value, values Values) bool
	Message   string
}

// Rules maps field names to their ordered validation rules.
type Rules map[string][]Rule

func Required(message string) Rule {
	return Rule{Required: true, Message: message}
}

func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{Pattern: re, Message: message}
}

func MinLength(n int, message string) Rule {
	return Rule{MinLength: n, Message: message}
}

// Validate runs all rules against values and returns per-field error
// messages; an empty map means the form is valid. The remote service is
// never consulted here.
func (rules Rules) Validate(values Values) map[string]string {
	errs := make(map[string]string)
	for name, fieldRules := range rules {
		if msg := validateField(fieldRules, values[name], values); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

func validateField(fieldRules []Rule, v Value, values Values) string {
	for _, rule := range fieldRules {
		if rule.Required && Empty(v) {
			return rule.Message
		}
		s, isStr := v.(string)
		if rule.Pattern != nil && isStr && !rule.Pattern.MatchString(s) {
			return rule.Message
		}
		if rule.MinLength > 0 && isStr && len(s) < rule.MinLength {
			return rule.Message
		}
		if rule.MaxLength > 0 && isStr && len(s) > rule.MaxLength {
			return rule.Message
		}
		if rule.Custom != nil && !rule.Custom(v, values) {
			return rule.Message
		}
	}
	return ""
}
