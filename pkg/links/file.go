package links

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FileSource reads URLs from a file, one URL per line
type FileSource struct{}

// NewFileSource creates a new file source
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Fetch reads URLs from a file (the file path is passed as ref)
func (s *FileSource) Fetch(ref string) ([]string, error) {
	file, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Remove trailing commas and whitespace
		line = strings.TrimRight(line, ", \t")

		if line == "" {
			continue
		}

		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file at line %d: %w", lineNum, err)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found in file")
	}

	return urls, nil
}
