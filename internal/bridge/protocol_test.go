package bridge

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/edu-arcade/internal/content"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Message
	}{
		{"ready", `{"type":"RUNTIME_READY"}`, RuntimeReadyMsg{}},
		{"legacy ready", `{"type":"GODOT_READY"}`, RuntimeReadyMsg{}},
		{"answer", `{"type":"ANSWER_SUBMITTED","payload":{"questionIndex":2,"answerIndex":1,"isCorrect":true}}`,
			AnswerSubmittedMsg{QuestionIndex: 2, AnswerIndex: 1, IsCorrect: true}},
		{"completed", `{"type":"GAME_COMPLETED","payload":{"score":40}}`, GameCompletedMsg{Score: 40}},
		{"next question", `{"type":"REQUEST_NEXT_QUESTION","payload":{"questionIndex":3}}`,
			RequestNextQuestionMsg{QuestionIndex: 3}},
		{"unknown", `{"type":"SOMETHING_ELSE","payload":{"x":1}}`, UnknownMsg{Type: "SOMETHING_ELSE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `hello`},
		{"answer without payload", `{"type":"ANSWER_SUBMITTED"}`},
		{"answer null payload", `{"type":"ANSWER_SUBMITTED","payload":null}`},
		{"bad payload", `{"type":"GAME_COMPLETED","payload":{"score":"lots"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.raw)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEncodeGameData(t *testing.T) {
	data := GameData{
		ID:               "m1",
		Name:             "Capitals",
		ScorePerQuestion: 5,
		MapID:            "forest",
		Countdown:        60,
		Questions: []Question{{
			QuestionText:  "Capital of France?",
			QuestionIndex: 0,
			Answers:       []Answer{{AnswerText: "Paris", AnswerIndex: 0}},
		}},
	}

	raw, err := Encode(GameDataMsg{Data: data})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if generic["type"] != TypeGameData {
		t.Errorf("type = %v", generic["type"])
	}
	payload, ok := generic["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload missing: %s", raw)
	}
	for _, key := range []string{"id", "name", "description", "scorePerQuestion", "mapId", "countdown", "questions"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("payload lacks %q", key)
		}
	}

	msg, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gd, ok := msg.(GameDataMsg)
	if !ok {
		t.Fatalf("decoded %T", msg)
	}
	if gd.Data.Questions[0].Answers[0].AnswerText != "Paris" {
		t.Errorf("answers lost: %+v", gd.Data)
	}
}

func TestEncodeReadyHasNoPayload(t *testing.T) {
	raw, err := Encode(RuntimeReadyMsg{})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"type":"RUNTIME_READY"}` {
		t.Errorf("got %s", raw)
	}
}

func TestEncodeUnknownFails(t *testing.T) {
	if _, err := Encode(UnknownMsg{Type: "X"}); err == nil {
		t.Error("expected error encoding unknown message")
	}
}

func TestNewGameData(t *testing.T) {
	if NewGameData(nil) != nil {
		t.Error("nil descriptor should give nil payload")
	}

	d := &content.MazeChaseDetail{
		ID:               "m1",
		ScorePerQuestion: 20,
		Questions: []content.MazeQuestion{
			{QuestionText: "q0", QuestionIndex: 0, Answers: []content.MazeAnswer{{AnswerText: "a", AnswerIndex: 0}}},
			{QuestionText: "q1", QuestionIndex: 1},
		},
	}
	gd := NewGameData(d)
	if gd.ID != "m1" || gd.ScorePerQuestion != 20 || len(gd.Questions) != 2 {
		t.Fatalf("unexpected payload %+v", gd)
	}
	if gd.Questions[1].Answers == nil {
		t.Error("answers should be empty, not nil")
	}

	raw, _ := json.Marshal(NewGameData(&content.MazeChaseDetail{ID: "empty"}))
	var generic map[string]any
	_ = json.Unmarshal(raw, &generic)
	if qs, ok := generic["questions"].([]any); !ok || len(qs) != 0 {
		t.Errorf("questions should encode as [], got %s", raw)
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindGameData, KindRuntimeReady, KindAnswerSubmitted, KindGameCompleted, KindRequestNextQuestion} {
		if ParseKind(k.String()) != k {
			t.Errorf("ParseKind(%q) != %v", k.String(), k)
		}
	}
	if ParseKind("nope") != KindUnknown {
		t.Error("unknown tag should map to KindUnknown")
	}
}
