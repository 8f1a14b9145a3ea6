package region

import (
	"errors"
	"fmt"
)

// ErrAllocation is returned (wrapped with a more specific message) when the
// configured [Allocator] fails to produce a node.
var ErrAllocation = errors.New("region: allocation failed")

// invariant panics with a package-prefixed message, matching the
// `catrate: <component>: <message>` convention used for conditions that
// indicate a broken invariant rather than a recoverable, caller-facing
// error.
func invariant(component, message string) {
	panic(fmt.Sprintf("region: %s: %s", component, message))
}

func invariantf(component, format string, args ...any) {
	panic(fmt.Sprintf("region: %s: %s", component, fmt.Sprintf(format, args...)))
}
