package playlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLinks reads the playlist URL list: one URL per line, blank lines
// skipped, order preserved.
func LoadLinks(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening links file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading links file: %w", err)
	}
	return urls, nil
}
