package r1cs

// Config configures a freshly constructed System. The zero Config is
// valid: it starts in DefaultMode with logging disabled.
type Config struct {
	// Mode is the initial synthesis mode. The zero Mode is
	// ProveMode(false); New treats a zero Mode as unset and uses
	// DefaultMode instead, so Config{Mode: SetupMode} selects Setup while
	// ProveMode(false) needs WithMode.
	Mode Mode

	// modeSet distinguishes "caller left Mode unset" from "caller asked
	// for ProveMode(false)", since both are Mode{}.
	modeSet bool

	// Log enables zerolog tracing of constraint/namespace events on this
	// System via internal/obslog.
	Log bool
}

// WithMode returns a copy of cfg with Mode explicitly set to m.
func (cfg Config) WithMode(m Mode) Config {
	cfg.Mode = m
	cfg.modeSet = true
	return cfg
}

// WithLogging returns a copy of cfg with logging enabled or disabled.
func (cfg Config) WithLogging(enabled bool) Config {
	cfg.Log = enabled
	return cfg
}

func (cfg Config) resolveMode() Mode {
	if cfg.modeSet || cfg.Mode != (Mode{}) {
		return cfg.Mode
	}
	return DefaultMode
}
