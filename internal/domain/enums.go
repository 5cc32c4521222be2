package domain

type SessionPhase string

const (
	PhaseIdle       SessionPhase = "idle"
	PhaseFocus      SessionPhase = "focus"
	PhaseShortBreak SessionPhase = "short_break"
	PhaseLongBreak  SessionPhase = "long_break"
)

// ValidSessionPhases is the canonical set of accepted phase strings.
var ValidSessionPhases = map[string]bool{
	"idle": true, "focus": true, "short_break": true, "long_break": true,
}

// IsBreak reports whether the phase is one of the two break phases.
func (p SessionPhase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

type TransactionKind string

const (
	TxEarned TransactionKind = "earned"
	TxSpent  TransactionKind = "spent"
	TxMarket TransactionKind = "market"
)

// ValidTransactionKinds is the canonical set of accepted transaction kind strings.
var ValidTransactionKinds = map[string]bool{
	"earned": true, "spent": true, "market": true,
}
