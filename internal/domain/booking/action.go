package booking

import "fmt"

// Action is the closed set of lifecycle transitions. Every mutation of a
// booking's status or confirmation flags goes through exactly one of these;
// there is no way to patch an arbitrary status/flag combination.
type Action string

const (
	ActionAcceptRequest     Action = "accept"
	ActionRejectRequest     Action = "reject"
	ActionConfirmBooking    Action = "confirm"
	ActionConfirmDropoff    Action = "confirm_dropoff"
	ActionConfirmReceiving  Action = "confirm_receiving"
	ActionConfirmCompletion Action = "confirm_completion"
	ActionConfirmPickup     Action = "confirm_pickup"
)

// IsValid returns true if the action is recognized.
func (a Action) IsValid() bool {
	switch a {
	case ActionAcceptRequest, ActionRejectRequest, ActionConfirmBooking,
		ActionConfirmDropoff, ActionConfirmReceiving,
		ActionConfirmCompletion, ActionConfirmPickup:
		return true
	}
	return false
}

// ParseAction converts a string to an Action, returning an error if invalid.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid booking action: %s", s)
	}
	return a, nil
}
