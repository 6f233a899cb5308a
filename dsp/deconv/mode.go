package deconv

import (
	"fmt"
	"strings"
)

// Mode selects the post-filter preset.
type Mode int

const (
	// ModeUnset disables recommended post-filtering.
	ModeUnset Mode = iota
	// ModeRest targets resting-state data: stronger smoothing, lower cutoff.
	ModeRest
	// ModeTask targets task-evoked data.
	ModeTask
)

// String returns "rest", "task" or "unset".
func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeRest:
		return "rest"
	case ModeTask:
		return "task"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m >= ModeUnset && m <= ModeTask
}

// ParseMode parses "rest" or "task" (case-insensitive). The empty string and
// "unset" yield ModeUnset.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset":
		return ModeUnset, nil
	case "rest":
		return ModeRest, nil
	case "task":
		return ModeTask, nil
	default:
		return ModeUnset, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler. ModeUnset encodes as the
// empty string.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	if m == ModeUnset {
		return []byte{}, nil
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
