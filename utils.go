/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-andiamo/splitter"
)

// readBracketFile reads a bracket file into a list of team names in bracket order
// Preconditions: Receives the path to a text file. Names are separated by whitespace or
// newlines; multi-word names must be double quoted. Blank lines and lines starting with # are
// skipped
// Postconditions: Returns the team names in file order, or an error if the file cannot be read
func readBracketFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bracket file: %w", err)
	}

	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes) //we use splitter here instead of go's built in splitter because now we can have team names that contain spaces e.g. "North Carolina" recognised as one team not two

	var names []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens, err := spaceSplitter.Split(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bracket line %q: %w", line, err)
		}
		for _, token := range tokens {
			token = strings.ReplaceAll(token, "\"", "")
			token = strings.ReplaceAll(token, "“", "")
			token = strings.ReplaceAll(token, "”", "")
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			names = append(names, token)
		}
	}
	return names, nil
}
