package utils

import (
	"unicode"
)

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ContainsSpecialChars reports whether s has anything besides letters and digits.
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsValidInput checks if input should be processed for completions
// Returns false for strings that contain numbers or special characters, or are repetitive
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}

	// dictionary words never carry digits
	if ContainsNumbers(s) {
		return false
	}

	if ContainsSpecialChars(s) {
		return false
	}

	// Reject repetitive strings like "dddd", "www", etc.
	if IsRepetitive(s) {
		return false
	}

	return true
}

// IsRepetitive checks if a string consists of repetitive characters
// Simple version that checks for repeated characters (e.g., "aaa", "bbb")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}

	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}
