package bridge

// Result is a completed runtime game, ready for persistence.
type Result struct {
	ContentID    string
	RuntimeScore int // Score reported by the runtime
	BridgeScore  int // Score tallied from answer events
}

// ResultSaver persists completed games.
type ResultSaver interface {
	SaveMazeResult(result Result) error
}
