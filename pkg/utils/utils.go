// Package utils validates and normalizes user supplied names.
package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the longest channel or team name the platform accepts.
const MaxNameLength = 100

// ChannelName returns the text channel name for a team name: lower case
// words joined with hyphens. Characters other than letters, digits, hyphens
// and underscores are dropped.
func ChannelName(name string) string {
	var words []string
	for _, field := range strings.Fields(strings.ToLower(name)) {
		word := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
				return r
			}
			return -1
		}, field)
		if word != "" {
			words = append(words, word)
		}
	}

	channel := strings.Join(words, "-")
	if utf8.RuneCountInString(channel) > MaxNameLength {
		channel = string([]rune(channel)[:MaxNameLength])
	}
	return channel
}

// ValidateTeamName returns an error if the given team name is invalid.
func ValidateTeamName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("team name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("team name cannot be longer than %d characters", MaxNameLength)
	}

	for _, r := range name {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("team name can only contain printable characters")
		}
	}

	if ChannelName(name) == "" {
		return fmt.Errorf("team name must contain a letter or a digit")
	}

	return nil
}
