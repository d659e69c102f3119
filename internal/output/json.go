package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONOutput appends one report per line to
// <folder>/<topic>/year=YYYY/month=MM/day=DD/data.json.
type JSONOutput struct {
	folder string
	mu     sync.Mutex
	files  map[string]*os.File
}

func NewJSONOutput(folder string) *JSONOutput {
	return &JSONOutput{
		folder: folder,
		files:  make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	h, err := decodeHeader(msg)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(j.folder, filepath.FromSlash(partitionPath(topic, h.GeneratedAt)))

	j.mu.Lock()
	defer j.mu.Unlock()

	file, ok := j.files[fullPath]
	if !ok {
		if err := os.MkdirAll(fullPath, 0o755); err != nil {
			return err
		}
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		j.files[fullPath] = file
	}

	if _, err := file.Write(msg); err != nil {
		return fmt.Errorf("write %s: %w", file.Name(), err)
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	var firstErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(j.files, key)
	}
	return firstErr
}
