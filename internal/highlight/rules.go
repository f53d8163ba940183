package highlight

import "regexp"

// Rule extracts category ranges from one line of text.
// Implementations must be total: any input, including empty or binary
// text, yields zero or more ranges and never panics.
type Rule interface {
	Match(line string) []Range
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(line string) []Range

// Match implements Rule.
func (f RuleFunc) Match(line string) []Range {
	return f(line)
}

// RuleSet is an ordered list of rules. Later rules narrow within the ranges
// produced by earlier ones.
type RuleSet []Rule

// Match runs every rule against line and returns the combined ranges.
func (rs RuleSet) Match(line string) []Range {
	var out []Range
	for _, r := range rs {
		if r == nil {
			continue
		}
		for _, rg := range r.Match(line) {
			if rg.Empty() || rg.Start < 0 || rg.End > len(line) {
				continue
			}
			out = append(out, rg)
		}
	}
	return out
}

// PrefixRule tags the whole line when it matches pattern.
// The pattern should be anchored at the start.
func PrefixRule(pattern *regexp.Regexp, category Category) Rule {
	return RuleFunc(func(line string) []Range {
		if line == "" || !pattern.MatchString(line) {
			return nil
		}
		return []Range{{Start: 0, End: len(line), Category: category}}
	})
}

