package engine

import "fmt"

// UnresolvedCodeError signals that a required free-text argument matched no
// entry of its code group. The operation aborts before anything is posted;
// the group and name let the caller pick a valid option and retry.
type UnresolvedCodeError struct {
	Op    Operation
	Field string
	Group string
	Name  string
}

func (e *UnresolvedCodeError) Error() string {
	return fmt.Sprintf("%s: %s %q matched no entry in %q", e.Op, e.Field, e.Name, e.Group)
}

// ValidationError signals a violated field constraint or cross-field rule.
// Rule names the failing check; validation stops at the first failure.
type ValidationError struct {
	Op     Operation
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed (%s): %s", e.Op, e.Rule, e.Detail)
}
