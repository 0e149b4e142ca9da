// Package loader handles instruction file loading operations.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the file name that selects the standard input.
const Stdin = "-"

// Loader handles loading instruction files from disk.
type Loader struct {
	stdin io.Reader
}

// New creates a new instruction loader.
func New() *Loader {
	return &Loader{
		stdin: os.Stdin,
	}
}

// Load reads all instruction lines of the given file, the file name "-"
// reads from the standard input. Every line keeps its position, so that
// instruction index i is line i+1 of the file.
func (l *Loader) Load(fileName string) ([]string, error) {
	if fileName == Stdin {
		lines, err := Read(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return lines, nil
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	lines, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", fileName, err)
	}
	return lines, nil
}

// Read returns all lines of the reader without line terminators. Lines are
// not limited in length.
func Read(reader io.Reader) ([]string, error) {
	var lines []string
	buf := bufio.NewReader(reader)
	for {
		line, err := buf.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading lines: %w", err)
		}
	}
}
