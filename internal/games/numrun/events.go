package numrun

// Event is something the game reports to its driver. Events are collected
// during Step and drained with Events.
type Event interface {
	isEvent()
}

// QuestionRequested asks the driver to fetch a question for Ticket.
type QuestionRequested struct {
	Ticket  uint64
	BlockID int
	Tier    int
}

// StageStarted is emitted after a stage is set up.
type StageStarted struct {
	Level, Stage int
}

// RunEnded is emitted once when the run finishes.
type RunEnded struct {
	Outcome      Outcome
	Score        int
	Level, Stage int
}

func (QuestionRequested) isEvent() {}
func (StageStarted) isEvent()      {}
func (RunEnded) isEvent()          {}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// Events returns and clears the events collected since the last call.
func (g *Game) Events() []Event {
	ev := g.events
	g.events = nil
	return ev
}
