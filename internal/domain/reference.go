package domain

import "regexp"

var (
	markedAccountPattern = regexp.MustCompile(`(?i)\bcta\b[^0-9]*?[:\s](\d{6,})`)
	bareAccountPattern   = regexp.MustCompile(`\d{6,10}`)
	referenceDigits      = regexp.MustCompile(`\d{7,10}`)
)

// ExtractAccountRef finds the account number of a request: digits
// following the account marker, else the first bare run of 6 to 10 digits.
func ExtractAccountRef(text string) (AccountRef, bool) {
	if m := markedAccountPattern.FindStringSubmatch(text); m != nil {
		return AccountRef(m[1]), true
	}
	if m := bareAccountPattern.FindString(text); m != "" {
		return AccountRef(m), true
	}
	return "", false
}

// ReferenceDigits returns the first run of 7 to 10 digits in free text, used
// to match follow-ups against tracked account numbers.
func ReferenceDigits(text string) (AccountRef, bool) {
	if m := referenceDigits.FindString(text); m != "" {
		return AccountRef(m), true
	}
	return "", false
}
