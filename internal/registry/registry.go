// Package registry provides a global catalogue of the arcade's game kinds.
// Games register themselves in init() functions, allowing the CLI, menu and
// scoreboard to discover them without hardcoded lists.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownGame is returned for IDs that were never registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Host says where a game runs.
type Host int

const (
	// HostTerminal games run inside the terminal shell.
	HostTerminal Host = iota
	// HostEmbedded games run in an external runtime reached through the bridge.
	HostEmbedded
)

func (h Host) String() string {
	switch h {
	case HostTerminal:
		return "terminal"
	case HostEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string // Used for CLI commands and score storage
	Title       string
	Description string
	Host        Host

	// LowerIsBetter marks games ranked by time rather than points.
	LowerIsBetter bool
}

var (
	games = make(map[string]GameInfo)
	mu    sync.RWMutex
)

// Register adds a game to the catalogue.
// Typically called from a game package's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: game without ID")
	}
	if _, exists := games[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}

	games[info.ID] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(games))
	for _, info := range games {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := games[id]
	if !ok {
		return GameInfo{}, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return info, nil
}
