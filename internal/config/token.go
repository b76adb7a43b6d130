package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// TokenFileName is the dotfile in the home directory holding the API token.
const TokenFileName = ".readability_parser_token"

// TokenSource tells where a resolved token came from.
type TokenSource string

const (
	SourceNone TokenSource = "none"
	SourceFlag TokenSource = "flag"
	SourceFile TokenSource = "file"
)

// Token is the outcome of token resolution. Path always names the dotfile
// that was or would have been read, so a missing token can be reported.
type Token struct {
	Value  string
	Source TokenSource
	Path   string
}

// Found reports whether a token was resolved.
func (t Token) Found() bool {
	return t.Source != SourceNone && t.Value != ""
}

// TokenPath returns the dotfile location inside home.
func TokenPath(home string) string {
	return filepath.Join(home, TokenFileName)
}

// ResolveToken picks the API token: a non-blank override wins, otherwise the
// first line of the dotfile in home, trimmed. An unreadable or blank dotfile
// yields a Token with SourceNone.
func ResolveToken(override, home string) Token {
	path := TokenPath(home)
	if v := strings.TrimSpace(override); v != "" {
		return Token{Value: v, Source: SourceFlag, Path: path}
	}
	if home == "" {
		return Token{Source: SourceNone, Path: path}
	}

	v, err := readFirstLine(path)
	if err != nil || v == "" {
		return Token{Source: SourceNone, Path: path}
	}
	return Token{Value: v, Source: SourceFile, Path: path}
}

func readFirstLine(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	return "", scanner.Err()
}
