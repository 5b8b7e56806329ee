package hooks

import (
	"fmt"
	"os"
)

// Note logs a non-fatal problem to stderr. Hook handlers always exit 0;
// stderr is the only place anything gets to complain.
func Note(err error) {
	fmt.Fprintf(os.Stderr, "herald hook: %v\n", err)
}
