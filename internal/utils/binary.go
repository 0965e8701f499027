package utils

import (
	"fmt"
	"unicode/utf8"
)

// IsBinary reports whether data cannot be decoded as UTF-8 text.
func IsBinary(data []byte) bool {
	return !utf8.Valid(data)
}

// DecodeText returns data as a string when it is valid UTF-8 and otherwise an
// error naming the first offending byte. NUL and other control bytes are text.
func DecodeText(data []byte) (string, error) {
	if !IsBinary(data) {
		return string(data), nil
	}
	offset := 0
	for offset < len(data) {
		runeValue, runeWidth := utf8.DecodeRune(data[offset:])
		if runeValue == utf8.RuneError && runeWidth <= 1 {
			return "", fmt.Errorf("content is not valid UTF-8: invalid byte 0x%02x at offset %d", data[offset], offset)
		}
		offset += runeWidth
	}
	return "", fmt.Errorf("content is not valid UTF-8")
}
