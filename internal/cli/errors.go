package cli

import (
	"fmt"

	"weekplan/internal/model"
)

type emptySlotError struct {
	slot model.SlotKey
}

func (e emptySlotError) Error() string {
	return fmt.Sprintf("slot is empty: %s", e.slot)
}

func errEmptySlot(slot model.SlotKey) error {
	return emptySlotError{slot: slot}
}

type invalidSlotError struct {
	args []string
	err  error
}

func (e invalidSlotError) Error() string {
	return fmt.Sprintf("invalid slot %q: %v (expected <day> <hour>, e.g. Mon 9, or Mon-9)", e.args, e.err)
}

func (e invalidSlotError) Unwrap() error { return e.err }

func errInvalidSlot(args []string, err error) error {
	return invalidSlotError{args: args, err: err}
}
