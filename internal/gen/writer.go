package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes each file to its own directory, creating directories as
// needed. An empty Dir means the current directory.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if err := file.write(file.Filename); err != nil {
			return err
		}
	}

	return nil
}

func (f GeneratedFile) write(name string) error {
	dir := f.Dir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := filepath.Join(dir, name)

	if err := os.WriteFile(outputPath, f.Content, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", outputPath, err)
	}

	return nil
}

// WriteUnformatted keeps source that failed to format next to the intended
// output as <name>.unformatted.go. Nothing is written for files without a
// directory.
func (f GeneratedFile) WriteUnformatted() error {
	if f.Dir == "" || f.Filename == "" {
		return nil
	}

	return f.write(strings.TrimSuffix(f.Filename, ".go") + ".unformatted.go")
}
