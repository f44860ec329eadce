package replay

import "fmt"

// MalformedHandError reports a hand record that cannot be replayed at all:
// missing streets, unknown players, negative amounts. It is fatal; amounts
// that merely fail to square with the chips in play are reported as
// warnings instead and the replay continues.
type MalformedHandError struct {
	Reason string
}

func (e *MalformedHandError) Error() string {
	return "malformed hand: " + e.Reason
}

func malformedf(format string, args ...any) *MalformedHandError {
	return &MalformedHandError{Reason: fmt.Sprintf(format, args...)}
}

// WarningKind classifies non-fatal replay anomalies.
type WarningKind uint8

const (
	// ChipDiscrepancy marks a recorded amount that did not square with the
	// chips in play: a commitment larger than the stack behind it, or an
	// explicit payout that does not sum to the pot.
	ChipDiscrepancy WarningKind = iota
)

// String returns the warning kind name.
func (k WarningKind) String() string {
	switch k {
	case ChipDiscrepancy:
		return "chip-discrepancy"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal anomaly found during the replay. Warnings attach to
// the step that raised them and accumulate on the state.
type Warning struct {
	Kind       WarningKind
	PlayerName string
	Detail     string
}

func (w Warning) String() string {
	if w.PlayerName == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}
	return fmt.Sprintf("%s (%s): %s", w.Kind, w.PlayerName, w.Detail)
}

func chipWarningf(player, format string, args ...any) Warning {
	return Warning{
		Kind:       ChipDiscrepancy,
		PlayerName: player,
		Detail:     fmt.Sprintf(format, args...),
	}
}
