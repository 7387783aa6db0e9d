package numrun

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/config"
	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/levels"
	"github.com/vovakirdan/numrun/internal/question"
	"github.com/vovakirdan/numrun/internal/registry"
)

// Presenter receives a snapshot after every tick.
type Presenter interface {
	Present(Snapshot)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Snapshot)

// Present calls f.
func (f PresenterFunc) Present(s Snapshot) { f(s) }

// Settings configure the drivers created by the registry.
type Settings struct {
	ConfigPath      string
	CampaignPath    string
	Preset          config.DifficultyPreset
	Level           int
	Sink            audio.Sink
	Provider        question.Provider
	QuestionTimeout time.Duration
	Logger          *log.Logger
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Level: 1, QuestionTimeout: 2 * time.Second}
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	update(func(s *Settings) { s.ConfigPath = path })
}

// SetCampaignPath sets a campaign YAML replacing the embedded one.
func SetCampaignPath(path string) {
	update(func(s *Settings) { s.CampaignPath = path })
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = config.DifficultyNormal
	}
	update(func(s *Settings) { s.Preset = p })
}

// SetStartLevel selects the level new runs start at.
func SetStartLevel(level int) {
	update(func(s *Settings) { s.Level = level })
}

// SetSoundSink routes cues of new runs to sink.
func SetSoundSink(sink audio.Sink) {
	update(func(s *Settings) { s.Sink = sink })
}

// SetQuestionProvider replaces the local generator.
func SetQuestionProvider(p question.Provider) {
	update(func(s *Settings) { s.Provider = p })
}

// SetLogger sets the logger used by new drivers.
func SetLogger(l *log.Logger) {
	update(func(s *Settings) { s.Logger = l })
}

func update(fn func(*Settings)) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	fn(&settings)
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

type questionResult struct {
	ticket uint64
	q      question.Question
}

// Driver owns a Game and everything around the tick: question fetches,
// event logging and snapshot publication. It implements registry.Game.
type Driver struct {
	settings  Settings
	presenter Presenter
	logger    *log.Logger
	provider  question.Provider

	game    *Game
	results chan questionResult
	cancel  context.CancelFunc
	ctx     context.Context
	wg      sync.WaitGroup
}

// NewDriver creates a driver. Zero settings fields fall back to defaults.
func NewDriver(s Settings) *Driver {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if s.Sink == nil {
		s.Sink = audio.Nop{}
	}
	p := s.Provider
	if p == nil {
		p = question.NewGenerator(time.Now().UnixNano())
	}
	return &Driver{
		settings: s,
		logger:   logger,
		provider: question.WithFallback(p, logger, s.QuestionTimeout),
	}
}

// NewAtLevel creates a driver from the package settings that starts its
// runs at level.
func NewAtLevel(level int) *Driver {
	s := currentSettings()
	s.Level = level
	return NewDriver(s)
}

// SetPresenter registers p to receive a snapshot after every Step.
func (d *Driver) SetPresenter(p Presenter) {
	d.presenter = p
}

// ID returns the unique identifier for this game.
func (d *Driver) ID() string { return ID }

// Title returns the display name for this game.
func (d *Driver) Title() string { return "Number Run" }

// Game returns the simulation, or nil before the first Reset.
func (d *Driver) Game() *Game { return d.game }

// Reset loads configuration and campaign and starts a new run. Failures fall
// back to the embedded defaults.
func (d *Driver) Reset(runtime core.RuntimeConfig) {
	d.stopFetches()

	cfg, err := config.LoadPlatformer(d.settings.ConfigPath)
	if err != nil {
		d.logger.Warn("config load failed, using defaults", "path", d.settings.ConfigPath, "err", err)
		cfg = config.DefaultPlatformerConfig()
	}
	if d.settings.Preset != "" {
		config.ApplyPreset(&cfg, d.settings.Preset)
	}

	campaign, err := d.loadCampaign()
	if err != nil {
		d.logger.Error("no playable campaign", "err", err)
		campaign = &levels.Campaign{}
	}

	level := d.settings.Level
	if level <= 0 {
		level = 1
	}
	d.game = New(campaign, WithConfig(cfg), WithSink(d.settings.Sink), WithLevel(level))

	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.results = make(chan questionResult, 1)
	d.game.Reset(runtime)
	d.dispatch()
}

func (d *Driver) loadCampaign() (*levels.Campaign, error) {
	if d.settings.CampaignPath == "" {
		return levels.Default()
	}
	c, err := levels.Load(d.settings.CampaignPath)
	if err == nil {
		return c, nil
	}
	d.logger.Warn("campaign load failed, using built-in campaign", "path", d.settings.CampaignPath, "err", err)
	return levels.Default()
}

// Step delivers finished question fetches, advances the game one tick,
// dispatches its events and publishes a snapshot.
func (d *Driver) Step(in core.InputFrame) core.StepResult {
	if d.game == nil {
		return core.StepResult{}
	}
	d.deliver()
	res := d.game.Step(in)
	d.dispatch()
	if d.presenter != nil {
		d.presenter.Present(d.game.Snapshot())
	}
	return res
}

// Render draws the current frame.
func (d *Driver) Render(dst *core.Screen) {
	if d.game != nil {
		d.game.Render(dst)
	}
}

// State returns the current game state.
func (d *Driver) State() core.GameState {
	if d.game == nil {
		return core.GameState{}
	}
	return d.game.State()
}

// Close cancels question fetches and waits for them to return.
func (d *Driver) Close() {
	d.stopFetches()
}

func (d *Driver) stopFetches() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

func (d *Driver) deliver() {
	for {
		select {
		case r := <-d.results:
			if !d.game.ReceiveQuestion(r.ticket, r.q) {
				d.logger.Debug("dropped stale question", "ticket", r.ticket)
			}
		default:
			return
		}
	}
}

func (d *Driver) dispatch() {
	for _, ev := range d.game.Events() {
		switch e := ev.(type) {
		case QuestionRequested:
			d.logger.Debug("question requested", "ticket", e.Ticket, "block", e.BlockID, "tier", e.Tier)
			d.fetch(e)
		case StageStarted:
			d.logger.Info("stage started", "level", e.Level, "stage", e.Stage)
		case RunEnded:
			d.logger.Info("run ended", "outcome", e.Outcome, "score", e.Score, "level", e.Level, "stage", e.Stage)
		}
	}
}

func (d *Driver) fetch(e QuestionRequested) {
	ctx, results := d.ctx, d.results
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		q, err := d.provider.Question(ctx, e.Tier)
		if err != nil {
			q = question.Fallback(e.Tier)
		}
		select {
		case results <- questionResult{ticket: e.Ticket, q: q}:
		case <-ctx.Done():
		}
	}()
}

// ErrRunEnded is returned by Run when the run finished on its own.
var ErrRunEnded = errors.New("numrun: run ended")

// Run steps the game at the configured tick rate until ctx is done or the
// run ends, reading input from next on every tick. It returns the final
// snapshot and ctx.Err() or ErrRunEnded.
func (d *Driver) Run(ctx context.Context, runtime core.RuntimeConfig, next func() core.InputFrame) (Snapshot, error) {
	d.Reset(runtime)
	defer d.Close()

	ticker := time.NewTicker(d.game.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return d.game.Snapshot(), ctx.Err()
		case <-ticker.C:
			in := core.NewInputFrame()
			if next != nil {
				in = next()
			}
			if res := d.Step(in); res.State.GameOver {
				return d.game.Snapshot(), ErrRunEnded
			}
		}
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return NewDriver(currentSettings())
	})
}
