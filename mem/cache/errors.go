package cache

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

// Errors returned by the replacement policies. Callers match them with
// errors.Is; the returned values carry the offending arguments.
const (
	ErrInvalidConfig  = constError("invalid replacement policy configuration")
	ErrSlotOutOfRange = constError("slot out of range")
	ErrNoCandidates   = constError("empty candidate set")
	ErrUnknownPolicy  = constError("unknown replacement policy")
)

func slotOutOfRangeError(slot, numLines int) error {
	return fmt.Errorf("%w: slot %d not in [0, %d)", ErrSlotOutOfRange, slot, numLines)
}
