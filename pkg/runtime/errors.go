package runtime

import "fmt"

// Error codes used in fail-fast panics. All of these indicate programmer
// errors, not recoverable runtime conditions.
//
//	E001 - lifecycle registration outside component initialization
//	E002 - component declares more reactive slots than the bitmask holds
//	E003 - TransitionOut called with no open transition group
//	E004 - EndGroup called with no open transition group
//	E005 - runtime used from a goroutine other than its owner
//	E006 - reactive slot index out of range
const (
	errLifecycleContext = 1
	errTooManySlots     = 2
	errNoGroup          = 3
	errUnbalancedGroup  = 4
	errWrongGoroutine   = 5
	errSlotRange        = 6
)

// failf panics with a bracketed error code, matching the runtime's
// fail-fast policy for programmer errors.
func failf(code int, format string, args ...any) {
	panic(fmt.Sprintf("[FRAY E%03d] %s", code, fmt.Sprintf(format, args...)))
}
