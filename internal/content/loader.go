package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files that are neither YAML nor JSON.
var ErrUnknownFormat = errors.New("content: unknown descriptor format")

// LoadSorting reads a Speed Sorting descriptor from a .yaml, .yml or .json file.
func LoadSorting(path string) (*SortingDetail, error) {
	var d SortingDetail
	if err := decodeFile(path, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadMaze reads a Maze Chase descriptor from a .yaml, .yml or .json file.
func LoadMaze(path string) (*MazeChaseDetail, error) {
	var d MazeChaseDetail
	if err := decodeFile(path, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadSortingDir recursively loads every sorting descriptor under root.
// Files with other extensions are skipped. Results are sorted by ID for
// deterministic ordering; descriptors without an ID take their file name.
func LoadSortingDir(root string) ([]*SortingDetail, error) {
	return loadDir(root, LoadSorting, func(d *SortingDetail) *string { return &d.ID })
}

// LoadMazeDir is LoadSortingDir for Maze Chase descriptors.
func LoadMazeDir(root string) ([]*MazeChaseDetail, error) {
	return loadDir(root, LoadMaze, func(d *MazeChaseDetail) *string { return &d.ID })
}

func loadDir[T any](root string, load func(string) (*T, error), id func(*T) *string) ([]*T, error) {
	var details []*T

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDescriptor(path) {
			return nil
		}

		detail, loadErr := load(path)
		if loadErr != nil {
			return loadErr
		}
		if p := id(detail); *p == "" {
			*p = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		details = append(details, detail)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: cannot load %s: %w", root, err)
	}

	sort.Slice(details, func(i, j int) bool {
		return *id(details[i]) < *id(details[j])
	})
	return details, nil
}

func decodeFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content: failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, dst)
	case ".json":
		err = json.Unmarshal(data, dst)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("content: failed to parse %s: %w", path, err)
	}
	return nil
}

func isDescriptor(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
