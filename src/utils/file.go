package utils

import "os"

// ReadFile reads the entire contents of a file.
func ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// ParseKeyInput parses key input from CLI, supporting both direct strings
// and @file:path syntax.
func ParseKeyInput(keyInput string) ([]byte, error) {
	if keyInput == "" {
		return nil, nil
	}

	if len(keyInput) > 6 && keyInput[:6] == "@file:" {
		path := keyInput[6:]
		return ReadFile(path)
	}

	return []byte(keyInput), nil
}
