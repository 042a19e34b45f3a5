package domain

// RecordState is the shared enable/disable state machine used by Book and
// Customer. Disable is valid only from Active, enable only from Disabled;
// a transition attempted from the wrong state reports ErrNotFound so callers
// cannot distinguish "already in target state" from "missing record".
type RecordState string

const (
	StateActive   RecordState = "ACTIVE"
	StateDisabled RecordState = "DISABLED"
)

// StateFromActive maps an is_active style flag onto a RecordState.
func StateFromActive(active bool) RecordState {
	if active {
		return StateActive
	}
	return StateDisabled
}

// StateFromDeleted maps a soft-delete flag onto a RecordState.
func StateFromDeleted(deleted bool) RecordState {
	return StateFromActive(!deleted)
}

// Disable transitions to Disabled. Only valid from Active.
func (s RecordState) Disable() (RecordState, error) {
	if s != StateActive {
		return s, ErrNotFound
	}
	return StateDisabled, nil
}

// Enable transitions to Active. Only valid from Disabled.
func (s RecordState) Enable() (RecordState, error) {
	if s != StateDisabled {
		return s, ErrNotFound
	}
	return StateActive, nil
}
