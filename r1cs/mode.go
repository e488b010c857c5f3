package r1cs

// Mode selects what a System does at allocation and enforcement time.
// Setup emits only structural information (no assignments required).
// Prove additionally populates assignments, and may or may not also
// materialize the sparse A/B/C matrices — ConstructMatrices controls
// that independently of whether assignments are tracked, per spec.
type Mode struct {
	setup             bool
	constructMatrices bool
}

// SetupMode is synthesis that emits only structural information.
var SetupMode = Mode{setup: true}

// ProveMode returns proving-mode synthesis, optionally also
// materializing constraint matrices. DefaultMode is ProveMode(true).
func ProveMode(constructMatrices bool) Mode {
	return Mode{constructMatrices: constructMatrices}
}

// DefaultMode is the mode a freshly constructed System starts in unless
// Config overrides it.
var DefaultMode = ProveMode(true)

// IsSetup reports whether m is SetupMode.
func (m Mode) IsSetup() bool { return m.setup }

// ShouldConstructMatrices reports whether A/B/C rows should be recorded
// as constraints are enforced: true in Setup (structure is all there
// is), and in Prove mode when ConstructMatrices was requested.
func (m Mode) ShouldConstructMatrices() bool {
	return m.setup || m.constructMatrices
}

func (m Mode) String() string {
	if m.setup {
		return "Setup"
	}
	if m.constructMatrices {
		return "Prove{ConstructMatrices:true}"
	}
	return "Prove{ConstructMatrices:false}"
}
