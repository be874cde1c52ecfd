package solver

import "errors"

// ErrInvalidInput marks structurally invalid solver input: malformed time
// ranges, non-positive headcounts, dangling person references. It is returned
// before any assignment work begins. Unfillable slots are never errors; they
// are reported as Solution data.
var ErrInvalidInput = errors.New("invalid solver input")

// errDeadlineExceeded is an internal signal that the backtracking search ran
// out of budget. It never escapes the solver; the caller sees a best-effort
// Solution with Incomplete set instead.
var errDeadlineExceeded = errors.New("search deadline exceeded")
