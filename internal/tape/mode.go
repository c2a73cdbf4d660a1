package tape

import "fmt"

// Mode controls whether a Tape accepts new records.
//
// The zero value is not a valid mode; tapes start in ModeRecord unless
// configured otherwise. Mode is a closed enum: SetMode rejects any value
// other than the two constants below, keeping the replay no-op invariant
// centralized in one accessor.
type Mode string

const (
	// ModeRecord accepts and appends normalized records.
	ModeRecord Mode = "record"

	// ModeReplay silences all append operations. The log is left
	// untouched so it can safely serve as the replay cache source.
	ModeReplay Mode = "replay"
)

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeRecord || m == ModeReplay
}

// SetMode switches the tape between record and replay.
// Returns an error for any value outside the closed enum.
// Mode can be toggled arbitrarily many times; there is no terminal state.
func (t *Tape) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid tape mode %q", m)
	}
	t.mode = m
	return nil
}

// Mode returns the tape's current mode.
func (t *Tape) Mode() Mode {
	return t.mode
}
