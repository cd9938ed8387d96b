package accessibility

// Mode is a travel alternative. The code set is closed: any other integer
// is rejected by ModeFromCode.
type Mode int

const (
	Auto Mode = iota
	Transit
	Bike
	Walk
)

// Reference is the mode against which alternative-specific constants are
// estimated; it never receives one.
const Reference = Auto

var modeNames = [...]string{
	Auto:    "auto",
	Transit: "transit",
	Bike:    "bike",
	Walk:    "walk",
}

// NumModes is the width of a person row in the utility grid.
const NumModes = len(modeNames)

func (m Mode) String() string {
	if m < 0 || int(m) >= NumModes {
		return "unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the four recognized modes.
func (m Mode) Valid() bool { return m >= 0 && int(m) < NumModes }

// ModeFromCode resolves an alternative code to a Mode.
func ModeFromCode(code int) (Mode, error) {
	m := Mode(code)
	if !m.Valid() {
		return 0, &UnknownModeError{Code: code}
	}
	return m, nil
}

// Modes lists every mode in code order.
func Modes() []Mode {
	return []Mode{Auto, Transit, Bike, Walk}
}
