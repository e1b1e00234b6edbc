package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const sortingYAML = `id: animals
name: Animals
description: Sort the animals
thumbnail_image: uploads/animals.png
categories:
  - id: c-mammal
    name: Mammals
  - id: c-bird
    name: Birds
items:
  - id: w1
    value: dog
    category_index: 0
    type: text
  - id: w2
    value: eagle
    category_id: c-bird
    type: text
  - id: w3
    value: owl.png
    type: image
`

const mazeJSON = `{
  "id": "m1",
  "name": "Capitals",
  "description": "Find the capital",
  "score_per_question": 20,
  "map_id": "forest",
  "countdown": 60,
  "questions": [
    {
      "question_text": "Capital of France?",
      "question_index": 0,
      "answers": [
        {"answer_text": "Paris", "answer_index": 0},
        {"answer_text": "Rome", "answer_index": 1}
      ]
    }
  ]
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadSortingYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "animals.yaml", sortingYAML)

	d, err := LoadSorting(path)
	if err != nil {
		t.Fatalf("LoadSorting() failed: %v", err)
	}

	if d.ID != "animals" || d.ThumbnailImage != "uploads/animals.png" {
		t.Errorf("unexpected header: %+v", d)
	}
	if len(d.Categories) != 2 || len(d.Items) != 3 {
		t.Fatalf("expected 2 categories and 3 items, got %d and %d", len(d.Categories), len(d.Items))
	}
	if d.Items[0].CategoryIndex == nil || *d.Items[0].CategoryIndex != 0 {
		t.Errorf("item w1 category_index not decoded: %v", d.Items[0].CategoryIndex)
	}
	if d.Items[1].CategoryIndex != nil {
		t.Errorf("item w2 should have no category_index, got %d", *d.Items[1].CategoryIndex)
	}
	if d.Items[1].CategoryID != "c-bird" {
		t.Errorf("item w2 category_id = %q", d.Items[1].CategoryID)
	}
	if d.Items[2].Type != ItemImage {
		t.Errorf("item w3 type = %q, expected image", d.Items[2].Type)
	}
}

func TestLoadMazeJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "capitals.json", mazeJSON)

	d, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}

	if d.ScorePerQuestion != 20 || d.MapID != "forest" || d.Countdown != 60 {
		t.Errorf("unexpected header: %+v", d)
	}
	if len(d.Questions) != 1 || len(d.Questions[0].Answers) != 2 {
		t.Fatalf("unexpected questions: %+v", d.Questions)
	}
	if d.Questions[0].Answers[1].AnswerText != "Rome" {
		t.Errorf("answer text = %q", d.Questions[0].Answers[1].AnswerText)
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "game.toml", "id = 1")

	_, err := LoadSorting(path)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadMaze(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSortingDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/zoo.yaml", sortingYAML)
	writeFile(t, dir, "a/unnamed.json", `{"name": "No ID", "categories": [], "items": []}`)
	writeFile(t, dir, "README.md", "not a descriptor")

	details, err := LoadSortingDir(dir)
	if err != nil {
		t.Fatalf("LoadSortingDir() failed: %v", err)
	}

	if len(details) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(details))
	}
	if details[0].ID != "animals" || details[1].ID != "unnamed" {
		t.Errorf("unexpected order/IDs: %q, %q", details[0].ID, details[1].ID)
	}
}

func TestLoadMazeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "capitals.json", mazeJSON)
	writeFile(t, dir, "rivers.yml", "name: Rivers\nscore_per_question: 5\n")

	details, err := LoadMazeDir(dir)
	if err != nil {
		t.Fatalf("LoadMazeDir() failed: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(details))
	}
	if details[0].ID != "m1" || details[1].ID != "rivers" {
		t.Errorf("unexpected order/IDs: %q, %q", details[0].ID, details[1].ID)
	}
	if details[1].ScorePerQuestion != 5 {
		t.Errorf("score_per_question = %d, expected 5", details[1].ScorePerQuestion)
	}
}

func TestLoadDirMissingRoot(t *testing.T) {
	_, err := LoadSortingDir(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadDirBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "id: [unclosed")
	if _, err := LoadMazeDir(dir); err == nil {
		t.Error("expected error for a malformed descriptor")
	}
}
