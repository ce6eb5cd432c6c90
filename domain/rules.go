package domain

import "context"

// Rule is a single business check; it captures its own arguments
type Rule func(ctx context.Context) Result

// RunRules executes rules in order and returns the first failure.
// When every rule passes it returns a bare success.
func RunRules(ctx context.Context, rules ...Rule) Result {
	for _, rule := range rules {
		if res := rule(ctx); res.Failed() {
			return res
		}
	}
	return Success("")
}

// Check turns a boolean condition into a rule
func Check(ok bool, message string) Rule {
	return func(context.Context) Result {
		if ok {
			return Success("")
		}
		return Failure(message)
	}
}
