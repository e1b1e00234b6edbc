package bridge

// Event is a notification from the Bridge to its host.
type Event interface {
	bridgeEvent()
}

// ReadyEvent is emitted when the runtime first signals readiness.
type ReadyEvent struct {
	Channel ChannelID
}

// ConfigSentEvent is emitted after the game configuration was pushed.
type ConfigSentEvent struct {
	GameID    string
	Questions int
}

// ScoreEvent is emitted when a correct answer raised the score.
type ScoreEvent struct {
	Score         int
	Delta         int
	QuestionIndex int
	AnswerIndex   int
}

// CompletedEvent is emitted when the runtime reports the end of its game.
// RuntimeScore is what the runtime reported; Score is the bridge's tally.
type CompletedEvent struct {
	RuntimeScore int
	Score        int
}

// NextQuestionEvent is emitted when the runtime asks for the next question.
type NextQuestionEvent struct {
	QuestionIndex int
}

func (ReadyEvent) bridgeEvent()        {}
func (ConfigSentEvent) bridgeEvent()   {}
func (ScoreEvent) bridgeEvent()        {}
func (CompletedEvent) bridgeEvent()    {}
func (NextQuestionEvent) bridgeEvent() {}
