package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kova98/lueur/models"
)

const DataFilePerm = 0644

// StateStore holds the id of the most recently scheduled email between runs.
type StateStore interface {
	// LastEmailID returns "" when no id has been stored yet.
	LastEmailID() (string, error)
	SaveLastEmailID(id string) error
}

// ReportLog is the append-only record of analytics rows.
type ReportLog interface {
	AppendRow(row models.ReportRow) error
}

// FileState keeps the last email id as a single line in a text file.
type FileState struct {
	path string
}

func NewFileState(path string) *FileState {
	return &FileState{path: path}
}

func (s *FileState) LastEmailID() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read last email id: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveLastEmailID replaces whatever id was stored before.
func (s *FileState) SaveLastEmailID(id string) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, []byte(id), DataFilePerm); err != nil {
		return fmt.Errorf("save last email id: %w", err)
	}
	return nil
}
