package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// GenerateMapper returns a random external user or group identifier.
func GenerateMapper() string {
	return "mapper-" + gofakeit.UUID()
}

func GenerateAuthorName() string {
	return gofakeit.Name()
}

// GeneratePadName returns a random pad name that is valid inside a group.
func GeneratePadName() string {
	return strings.ReplaceAll(gofakeit.Word()+"-"+gofakeit.LetterN(10), "$", "")
}

// GenerateText returns a random paragraph without a trailing newline.
func GenerateText() string {
	return gofakeit.Sentence(8)
}
