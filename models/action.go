package models

import (
	"encoding/json"
	"fmt"
)

// Action tells the receiving device how to interpret an [Envelope].
type Action int

const (
	// ActionNoUpdate announces that nothing changed since the last cycle.
	ActionNoUpdate Action = iota
	// ActionSimpleUpdate carries the whole diff in a single envelope.
	ActionSimpleUpdate
	// ActionSliceUpdate carries one slice of a diff split across several
	// envelopes. The receiver concatenates slices 0..size-1 in index order.
	ActionSliceUpdate
)

const (
	noUpdateName     = "no_update"
	simpleUpdateName = "simple_update"
	sliceUpdateName  = "slice_update"
)

func (a Action) String() string {
	switch a {
	case ActionNoUpdate:
		return noUpdateName
	case ActionSimpleUpdate:
		return simpleUpdateName
	case ActionSliceUpdate:
		return sliceUpdateName
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// MarshalJSON encodes the action as its wire name.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a wire name. Unknown names are rejected.
func (a *Action) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("action must be a string: %w", err)
	}

	switch s {
	case noUpdateName:
		*a = ActionNoUpdate
	case simpleUpdateName:
		*a = ActionSimpleUpdate
	case sliceUpdateName:
		*a = ActionSliceUpdate
	default:
		return fmt.Errorf("unknown action %q", s)
	}
	return nil
}
