package tokenizer

// Byte classes follow the "C" locale so word boundaries never depend on the
// environment. Bytes >= 0x80 belong to no class and are kept inside words.

func IsWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func IsLowerLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func IsUpperLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// IsPunctuation reports printable ASCII that is neither alphanumeric nor space.
func IsPunctuation(c byte) bool {
	return (c >= 0x21 && c <= 0x2F) ||
		(c >= 0x3A && c <= 0x40) ||
		(c >= 0x5B && c <= 0x60) ||
		(c >= 0x7B && c <= 0x7E)
}

// IsEscape reports the characters that need a backslash escape in a C string
// literal, plus NUL.
func IsEscape(c byte) bool {
	switch c {
	case '\n', '\t', '\r', '\\', '"', '?', 0x00:
		return true
	}
	return false
}

// IsIllegal reports whether c ends the current word. An apostrophe or hyphen
// between two lowercase letters stays inside the word (they're, co-worker).
func IsIllegal(c, prev, next byte) bool {
	if (c == '\'' || c == '-') && IsLowerLetter(prev) && IsLowerLetter(next) {
		return false
	}

	return IsWhitespace(c) || IsDigit(c) || IsPunctuation(c) || IsEscape(c)
}
