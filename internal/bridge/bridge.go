package bridge

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/edu-arcade/internal/clock"
)

// Config holds the Bridge tunables.
type Config struct {
	// SettleDelay is the wait between the ready signal and the configuration
	// push, covering the runtime's own asynchronous startup.
	SettleDelay time.Duration

	// DefaultScorePerQuestion is used when the game data does not set one.
	DefaultScorePerQuestion int
}

// DefaultConfig returns the standard Bridge configuration.
func DefaultConfig() Config {
	return Config{
		SettleDelay:             time.Second,
		DefaultScorePerQuestion: 10,
	}
}

// Bridge mediates between the host and one embedded runtime.
//
// It is not safe for concurrent use: the host loop owns it and serialises
// Attach, Deliver, SetGameData and Advance.
type Bridge struct {
	cfg      Config
	logger   *log.Logger
	sched    *clock.Scheduler
	listener func(Event)

	channel Channel
	data    *GameData
	ready   bool
	score   int

	pendingSend *clock.Timer
	closed      bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(b *Bridge) {
		b.cfg = cfg
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithListener registers the host callback for bridge events.
// The callback runs synchronously on the owning loop.
func WithListener(fn func(Event)) Option {
	return func(b *Bridge) {
		b.listener = fn
	}
}

// New creates a Bridge with no channel attached.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		cfg:    DefaultConfig(),
		logger: log.New(io.Discard),
		sched:  clock.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach makes ch the only trusted channel. A new runtime connection starts
// unready: it must signal readiness before configuration is pushed to it.
func (b *Bridge) Attach(ch Channel) {
	if ch == nil {
		b.Detach()
		return
	}
	b.cancelSend()
	b.channel = ch
	b.ready = false
	b.logger.Info("runtime channel attached", "channel", ch.ID())
}

// Detach forgets the trusted channel. Messages are dropped until the next Attach.
func (b *Bridge) Detach() {
	if b.channel == nil {
		return
	}
	b.logger.Info("runtime channel detached", "channel", b.channel.ID())
	b.cancelSend()
	b.channel = nil
	b.ready = false
}

// ChannelID returns the trusted channel, or "" when none is attached.
func (b *Bridge) ChannelID() ChannelID {
	if b.channel == nil {
		return ""
	}
	return b.channel.ID()
}

// SetGameData sets the configuration source. A different payload set while
// the runtime is ready is pushed again after the settle delay.
func (b *Bridge) SetGameData(d *GameData) {
	if d == b.data {
		return
	}
	b.data = d
	if b.ready {
		b.scheduleSend()
	}
}

// Deliver handles one inbound message from the channel src. Messages from any
// channel other than the attached one are dropped unread.
func (b *Bridge) Deliver(src ChannelID, raw []byte) {
	if b.closed {
		return
	}
	if b.channel == nil || src != b.channel.ID() {
		b.logger.Debug("dropping message from untrusted channel", "channel", src)
		return
	}

	msg, err := Decode(raw)
	if err != nil {
		b.logger.Debug("dropping undecodable message", "error", err)
		return
	}

	switch m := msg.(type) {
	case RuntimeReadyMsg:
		b.handleReady()
	case AnswerSubmittedMsg:
		b.handleAnswer(m)
	case GameCompletedMsg:
		b.logger.Info("runtime game completed", "runtime_score", m.Score, "score", b.score)
		b.emit(CompletedEvent{RuntimeScore: m.Score, Score: b.score})
	case RequestNextQuestionMsg:
		b.logger.Debug("runtime requested next question", "question", m.QuestionIndex)
		b.emit(NextQuestionEvent{QuestionIndex: m.QuestionIndex})
	case GameDataMsg:
		b.logger.Debug("ignoring host-bound message from runtime", "type", m.Kind())
	case UnknownMsg:
		b.logger.Debug("ignoring unknown message", "type", m.Type)
	}
}

func (b *Bridge) handleReady() {
	if b.ready {
		return
	}
	b.ready = true
	b.logger.Info("runtime ready", "channel", b.channel.ID())
	b.emit(ReadyEvent{Channel: b.channel.ID()})
	b.scheduleSend()
}

func (b *Bridge) handleAnswer(m AnswerSubmittedMsg) {
	if !m.IsCorrect {
		return
	}
	delta := b.cfg.DefaultScorePerQuestion
	if b.data != nil && b.data.ScorePerQuestion > 0 {
		delta = b.data.ScorePerQuestion
	}
	b.score += delta
	b.emit(ScoreEvent{
		Score:         b.score,
		Delta:         delta,
		QuestionIndex: m.QuestionIndex,
		AnswerIndex:   m.AnswerIndex,
	})
}

// scheduleSend arms the configuration push, replacing a pending one.
func (b *Bridge) scheduleSend() {
	if b.data == nil {
		return
	}
	b.cancelSend()
	b.pendingSend = b.sched.After(b.cfg.SettleDelay, b.sendConfiguration)
}

func (b *Bridge) cancelSend() {
	b.pendingSend.Stop()
	b.pendingSend = nil
}

// sendConfiguration pushes the game data. Guarded: without a channel or data
// there is nothing to do.
func (b *Bridge) sendConfiguration() {
	b.pendingSend = nil
	if b.closed || b.channel == nil || b.data == nil {
		return
	}

	raw, err := Encode(GameDataMsg{Data: *b.data})
	if err != nil {
		b.logger.Error("cannot encode game data", "error", err)
		return
	}

	b.channel.Send(raw)
	b.logger.Info("game data sent", "game", b.data.ID, "questions", len(b.data.Questions))
	b.emit(ConfigSentEvent{GameID: b.data.ID, Questions: len(b.data.Questions)})
}

func (b *Bridge) emit(e Event) {
	if b.listener != nil {
		b.listener(e)
	}
}

// Advance moves bridge time forward, firing a due configuration push.
func (b *Bridge) Advance(dt time.Duration) {
	b.sched.Advance(dt)
}

// Close cancels pending work. Later deliveries are ignored.
func (b *Bridge) Close() {
	b.closed = true
	b.sched.StopAll()
	b.pendingSend = nil
}

// Ready reports whether the runtime signalled readiness.
func (b *Bridge) Ready() bool { return b.ready }

// Score returns the accumulated score.
func (b *Bridge) Score() int { return b.score }

// GameData returns the current configuration source.
func (b *Bridge) GameData() *GameData { return b.data }
