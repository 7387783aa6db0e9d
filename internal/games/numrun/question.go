package numrun

import (
	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/question"
)

// quizState tracks the question attached to a bumped block. A state is
// active from the request until the answer settles.
type quizState struct {
	ticket   uint64
	blockID  int
	waiting  bool // requested, not delivered yet
	current  *question.Question
	answered bool
	choice   int
	correct  bool
}

func (q quizState) active() bool {
	return q.waiting || q.current != nil
}

// requestQuestion pauses the game and asks the driver for a question. A
// second bump while a question is active is ignored.
func (g *Game) requestQuestion(blockID int) {
	if g.quiz.active() {
		return
	}
	g.ticketSeq++
	g.quiz = quizState{ticket: g.ticketSeq, blockID: blockID, waiting: true}
	g.cue(audio.CueBlockHit)
	g.emit(QuestionRequested{
		Ticket:  g.ticketSeq,
		BlockID: blockID,
		Tier:    g.campaign.Tier(g.level),
	})
}

// ReceiveQuestion delivers the question for a ticket. Results for a stale
// ticket are dropped and false is returned.
func (g *Game) ReceiveQuestion(ticket uint64, q question.Question) bool {
	if !g.quiz.waiting || g.quiz.ticket != ticket {
		return false
	}
	q = question.Normalize(q)
	g.quiz.current = &q
	g.quiz.waiting = false
	return true
}

// Answer selects option i of the current question. Only the first answer
// counts; the result applies after the settle delay.
func (g *Game) Answer(i int) bool {
	q := g.quiz.current
	if q == nil || g.quiz.answered || i < 0 || i >= question.OptionCount {
		return false
	}
	g.quiz.answered = true
	g.quiz.choice = i
	g.quiz.correct = q.IsCorrect(i)
	if g.quiz.correct {
		g.cue(audio.CueCorrectAnswer)
	} else {
		g.cue(audio.CueIncorrectAnswer)
	}

	ticket := g.quiz.ticket
	g.sched.after(g.cfg.Timing.AnswerSettle, func() { g.settleAnswer(ticket) })
	return true
}

func (g *Game) settleAnswer(ticket uint64) {
	if g.quiz.ticket != ticket || !g.quiz.answered {
		return
	}
	correct := g.quiz.correct
	blockID := g.quiz.blockID
	g.quiz = quizState{ticket: ticket}

	if !correct {
		g.hitPlayer()
		return
	}

	g.addScore(g.cfg.Scoring.Correct)
	g.showMessage("Correct!", g.cfg.Timing.Message)
	b := g.blockByID(blockID)
	if b == nil {
		return
	}
	b.Cleared = true
	x, y := b.X, b.Y+g.cfg.World.BlockHeight
	gen := g.stageGen
	g.sched.after(g.cfg.Timing.PopupDelay, func() {
		if g.stageGen == gen {
			g.addPopup(x, y, scoreText(g.cfg.Scoring.Correct), g.cfg.Timing.Popup)
		}
	})
}

// DismissInstructions closes the bonus instructions and starts the countdown.
func (g *Game) DismissInstructions() {
	g.instructions = false
}

// ToggleHelp shows or hides the help overlay.
func (g *Game) ToggleHelp() {
	if g.outcome != OutcomeNone {
		return
	}
	g.help = !g.help
}
