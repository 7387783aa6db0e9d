package numrun

// Mode is the current game mode. It is a closed set: Overworld, Bonus,
// PreCastleRun and FinalRun.
type Mode interface {
	isMode()
	// Name returns the mode name shown in snapshots and logs.
	Name() string
}

// Overworld is a regular stage.
type Overworld struct {
	StageComplete bool
}

// BonusPhase is the sub-state of the bonus detour.
type BonusPhase int

const (
	HoleVisible BonusPhase = iota
	Falling
	Underground
	Returning
)

func (p BonusPhase) String() string {
	switch p {
	case HoleVisible:
		return "holeVisible"
	case Falling:
		return "falling"
	case Underground:
		return "underground"
	case Returning:
		return "returning"
	}
	return "unknown"
}

// Bonus covers the whole detour from the hole opening to the return.
// Offset is the transition animation progress in [0, OffsetMax]; TimeLeft
// counts seconds while Underground.
type Bonus struct {
	Phase    BonusPhase
	Offset   float64
	TimeLeft int
}

// PreCastleRun is the gem road before the final castle.
type PreCastleRun struct{}

// FinalRun is the walk to the castle door. Entering locks input.
type FinalRun struct {
	Entering bool
}

func (Overworld) isMode()    {}
func (Bonus) isMode()        {}
func (PreCastleRun) isMode() {}
func (FinalRun) isMode()     {}

func (Overworld) Name() string    { return "normal" }
func (Bonus) Name() string        { return "bonus" }
func (PreCastleRun) Name() string { return "preCastleRun" }
func (FinalRun) Name() string     { return "finalRun" }

// Transition names the bonus transition state: none, holeVisible, falling,
// complete or returning.
func Transition(m Mode) string {
	b, ok := m.(Bonus)
	if !ok {
		return "none"
	}
	if b.Phase == Underground {
		return "complete"
	}
	return b.Phase.String()
}

// SimulationStatus gates the tick.
type SimulationStatus int

const (
	Running SimulationStatus = iota
	PausedForModal
	PausedForTransition
	Ended
)

func (s SimulationStatus) String() string {
	switch s {
	case Running:
		return "running"
	case PausedForModal:
		return "paused-modal"
	case PausedForTransition:
		return "paused-transition"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGameOver
	OutcomeLevelComplete
	OutcomeGameComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGameOver:
		return "game-over"
	case OutcomeLevelComplete:
		return "level-complete"
	case OutcomeGameComplete:
		return "game-complete"
	}
	return ""
}
