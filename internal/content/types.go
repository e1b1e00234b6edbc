// Package content defines the game descriptors the arcade consumes and loads
// them from YAML or JSON files. Descriptors are read-only inputs: games derive
// their own state from them and never write back.
package content

// ItemType tells how a sorting item's value is presented.
type ItemType string

const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
)

// SortingDetail describes a Speed Sorting game.
type SortingDetail struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description" yaml:"description"`
	ThumbnailImage string            `json:"thumbnail_image" yaml:"thumbnail_image"`
	Categories     []SortingCategory `json:"categories" yaml:"categories"`
	Items          []SortingItem     `json:"items" yaml:"items"`
}

// SortingCategory is one bucket of a sorting game.
type SortingCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// SortingItem is one word (or image) to sort.
// CategoryIndex and CategoryID are both optional; CategoryIndex wins when set.
type SortingItem struct {
	ID            string   `json:"id" yaml:"id"`
	Value         string   `json:"value" yaml:"value"`
	CategoryIndex *int     `json:"category_index,omitempty" yaml:"category_index,omitempty"`
	CategoryID    string   `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Type          ItemType `json:"type" yaml:"type"`
}

// MazeChaseDetail describes a Maze Chase quiz played inside the embedded runtime.
type MazeChaseDetail struct {
	ID               string         `json:"id" yaml:"id"`
	Name             string         `json:"name" yaml:"name"`
	Description      string         `json:"description" yaml:"description"`
	ScorePerQuestion int            `json:"score_per_question" yaml:"score_per_question"`
	MapID            string         `json:"map_id" yaml:"map_id"`
	Countdown        int            `json:"countdown" yaml:"countdown"`
	Questions        []MazeQuestion `json:"questions" yaml:"questions"`
}

// MazeQuestion is a single quiz question.
type MazeQuestion struct {
	QuestionText  string       `json:"question_text" yaml:"question_text"`
	QuestionIndex int          `json:"question_index" yaml:"question_index"`
	Answers       []MazeAnswer `json:"answers" yaml:"answers"`
}

// MazeAnswer is one answer option of a question.
type MazeAnswer struct {
	AnswerText  string `json:"answer_text" yaml:"answer_text"`
	AnswerIndex int    `json:"answer_index" yaml:"answer_index"`
}

// Index returns a pointer to i, for building items with a category index.
func Index(i int) *int {
	return &i
}
