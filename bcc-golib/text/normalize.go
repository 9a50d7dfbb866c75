package text

import (
	"strings"
	"unicode"
)

// RemoveURLs blanks out http(s) urls from a string.
func RemoveURLs(s string) string {
	var b strings.Builder
	for _, field := range strings.Fields(s) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") || strings.HasPrefix(field, "www.") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
	}
	return b.String()
}

// RemoveMentions drops @user references.
func RemoveMentions(s string) string {
	var b strings.Builder
	for _, field := range strings.Fields(s) {
		if strings.HasPrefix(field, "@") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
	}
	return b.String()
}

// StripHashtags keeps a hashtag's word but removes the leading '#'.
func StripHashtags(s string) string {
	return strings.Replace(s, "#", "", -1)
}

// RemovePunctuations removes punctuations from a string. Non-ascii runes
// are blanked as well since the stemmer only handles ascii.
func RemovePunctuations(s string) string {
	var b strings.Builder
	for i, c := range s {
		switch {
		case c > unicode.MaxASCII:
			b.WriteByte(' ')
		case (unicode.IsPunct(c) && !specialCase(s, i)) || IsOperator(c):
			b.WriteByte(' ')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// RemoveTrailingSpaces removes trailing spaces of a string.
func RemoveTrailingSpaces(s string) string {
	s = strings.Trim(s, " \n")
	return s
}

// Normalize removes
// 1) urls
// 2) @mentions
// 3) hashtag markers
// 4) punctuations
// 5) trailing spaces from a string.
func Normalize(s string) string {
	s = RemoveURLs(s)
	s = RemoveMentions(s)
	s = StripHashtags(s)
	s = RemovePunctuations(s)
	s = RemoveTrailingSpaces(s)
	return s
}

// specialCase checks whether the punctuation corresponds to
// a special case that should be skipped.
func specialCase(s string, i int) bool {
	switch s[i] {
	case '\'':
		// keep contractions ("weren't") intact
		return i > 0 && i < len(s)-1 && isLetter(s[i-1]) && isLetter(s[i+1])
	case '_':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsOperator returns true if c is an operator.
func IsOperator(c rune) bool {
	switch c {
	case '+', '-', '/', '=', '>', '<', '*':
		return true
	}
	return false
}
