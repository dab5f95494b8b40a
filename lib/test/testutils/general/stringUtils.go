package general

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// padChars avoids '$', which separates a group from the pad name.
const padChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 !@#%^&*()_+-=[]{}|;:,.<>?"

// RandomMultiline returns up to maxLines lines of at most maxCols characters.
// Empty lines are mixed in so pads with blank paragraphs get exercised.
func RandomMultiline(maxLines, maxCols int) string {
	lines := make([]string, gofakeit.Number(1, maxLines))
	for i := range lines {
		if gofakeit.Number(0, 9) == 0 {
			continue
		}
		lines[i] = RandomInlineString(gofakeit.Number(1, maxCols))
	}
	return strings.Join(lines, "\n")
}

// RandomInlineString returns length characters without a line break.
func RandomInlineString(length int) string {
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(padChars[gofakeit.Number(0, len(padChars)-1)])
	}
	return b.String()
}
