// Package bridge connects the arcade to an embedded game runtime that can
// only be reached by message passing. It defines the wire protocol and the
// Bridge state machine that pushes game configuration to the runtime and
// tracks readiness and score from the events the runtime sends back.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/edu-arcade/internal/content"
)

// Kind is the closed set of message types on the channel.
type Kind int

const (
	KindUnknown Kind = iota
	KindGameData
	KindRuntimeReady
	KindAnswerSubmitted
	KindGameCompleted
	KindRequestNextQuestion
)

// Wire type tags.
const (
	TypeGameData            = "GAME_DATA"
	TypeRuntimeReady        = "RUNTIME_READY"
	TypeAnswerSubmitted     = "ANSWER_SUBMITTED"
	TypeGameCompleted       = "GAME_COMPLETED"
	TypeRequestNextQuestion = "REQUEST_NEXT_QUESTION"

	// typeLegacyReady is sent by runtime builds that predate RUNTIME_READY.
	typeLegacyReady = "GODOT_READY"
)

// String returns the wire tag of the kind.
func (k Kind) String() string {
	switch k {
	case KindGameData:
		return TypeGameData
	case KindRuntimeReady:
		return TypeRuntimeReady
	case KindAnswerSubmitted:
		return TypeAnswerSubmitted
	case KindGameCompleted:
		return TypeGameCompleted
	case KindRequestNextQuestion:
		return TypeRequestNextQuestion
	default:
		return "UNKNOWN"
	}
}

// ParseKind maps a wire tag to a Kind. Unrecognised tags give KindUnknown.
func ParseKind(tag string) Kind {
	switch tag {
	case TypeGameData:
		return KindGameData
	case TypeRuntimeReady, typeLegacyReady:
		return KindRuntimeReady
	case TypeAnswerSubmitted:
		return KindAnswerSubmitted
	case TypeGameCompleted:
		return KindGameCompleted
	case TypeRequestNextQuestion:
		return KindRequestNextQuestion
	default:
		return KindUnknown
	}
}

// Envelope is the JSON shape of every message on the channel.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is a decoded channel message. The set of implementations is closed.
type Message interface {
	Kind() Kind
}

// GameDataMsg carries the game configuration to the runtime.
type GameDataMsg struct {
	Data GameData
}

// RuntimeReadyMsg signals that the runtime finished starting.
type RuntimeReadyMsg struct{}

// AnswerSubmittedMsg reports one answered question.
type AnswerSubmittedMsg struct {
	QuestionIndex int  `json:"questionIndex"`
	AnswerIndex   int  `json:"answerIndex"`
	IsCorrect     bool `json:"isCorrect"`
}

// GameCompletedMsg reports the end of the runtime's game.
type GameCompletedMsg struct {
	Score int `json:"score"`
}

// RequestNextQuestionMsg asks the host about the next question.
type RequestNextQuestionMsg struct {
	QuestionIndex int `json:"questionIndex"`
}

// UnknownMsg is any message whose type tag is not recognised.
type UnknownMsg struct {
	Type string
}

func (GameDataMsg) Kind() Kind            { return KindGameData }
func (RuntimeReadyMsg) Kind() Kind        { return KindRuntimeReady }
func (AnswerSubmittedMsg) Kind() Kind     { return KindAnswerSubmitted }
func (GameCompletedMsg) Kind() Kind       { return KindGameCompleted }
func (RequestNextQuestionMsg) Kind() Kind { return KindRequestNextQuestion }
func (UnknownMsg) Kind() Kind             { return KindUnknown }

// GameData is the configuration payload the runtime expects.
type GameData struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ScorePerQuestion int        `json:"scorePerQuestion"`
	MapID            string     `json:"mapId"`
	Countdown        int        `json:"countdown"`
	Questions        []Question `json:"questions"`
}

// Question is one question of the payload.
type Question struct {
	QuestionText  string   `json:"questionText"`
	QuestionIndex int      `json:"questionIndex"`
	Answers       []Answer `json:"answers"`
}

// Answer is one answer option of the payload.
type Answer struct {
	AnswerText  string `json:"answerText"`
	AnswerIndex int    `json:"answerIndex"`
}

// NewGameData derives the runtime payload from a Maze Chase descriptor.
// Returns nil for a nil descriptor. Lists are never nil so they encode as [].
func NewGameData(d *content.MazeChaseDetail) *GameData {
	if d == nil {
		return nil
	}

	questions := make([]Question, 0, len(d.Questions))
	for _, q := range d.Questions {
		answers := make([]Answer, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, Answer{AnswerText: a.AnswerText, AnswerIndex: a.AnswerIndex})
		}
		questions = append(questions, Question{
			QuestionText:  q.QuestionText,
			QuestionIndex: q.QuestionIndex,
			Answers:       answers,
		})
	}

	return &GameData{
		ID:               d.ID,
		Name:             d.Name,
		Description:      d.Description,
		ScorePerQuestion: d.ScorePerQuestion,
		MapID:            d.MapID,
		Countdown:        d.Countdown,
		Questions:        questions,
	}
}

// Decode parses a raw channel message. Unknown type tags decode to UnknownMsg
// without error; a malformed envelope or payload is an error.
func Decode(raw []byte) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("bridge: malformed envelope: %w", err)
	}

	kind := ParseKind(env.Type)
	switch kind {
	case KindGameData:
		var m GameDataMsg
		if err := decodePayload(env, &m.Data); err != nil {
			return nil, err
		}
		return m, nil
	case KindRuntimeReady:
		return RuntimeReadyMsg{}, nil
	case KindAnswerSubmitted:
		var m AnswerSubmittedMsg
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindGameCompleted:
		var m GameCompletedMsg
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindRequestNextQuestion:
		var m RequestNextQuestionMsg
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return UnknownMsg{Type: env.Type}, nil
	}
}

func decodePayload(env Envelope, dst any) error {
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return fmt.Errorf("bridge: %s without payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("bridge: bad %s payload: %w", env.Type, err)
	}
	return nil
}

// Encode serialises a message into its wire envelope.
func Encode(m Message) ([]byte, error) {
	var payload any
	switch msg := m.(type) {
	case GameDataMsg:
		payload = msg.Data
	case RuntimeReadyMsg:
		payload = nil
	case AnswerSubmittedMsg, GameCompletedMsg, RequestNextQuestionMsg:
		payload = msg
	default:
		return nil, fmt.Errorf("bridge: cannot encode %T", m)
	}

	env := Envelope{Type: m.Kind().String()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("bridge: cannot encode %s: %w", env.Type, err)
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}
