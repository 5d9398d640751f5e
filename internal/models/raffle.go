package models

import "time"

// MaxWordIndex is the index of the last word in the vocabulary list.
const MaxWordIndex = 2027

// DefaultNumberOfWords is the value the form starts with.
const DefaultNumberOfWords = 100

// RaffleInput is a validated form submission.
// The binding tags mirror MaxWordIndex and are checked through gin's validator.
type RaffleInput struct {
	NumberOfWords int `json:"numberOfWords" form:"numberOfWords" binding:"min=1,max=2027"`
}

// Mode selects which language is studied as the source.
type Mode int

const (
	ModeEnglishToJapanese Mode = 0
	ModeJapaneseToEnglish Mode = 1
)

// Direction is the (source, target) label pair for a study mode.
type Direction struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

var languages = [2]string{"英語", "日本語"}

// Direction returns the label pair for m. The pairs for the two modes are
// exact reverses of each other.
func (m Mode) Direction() Direction {
	i := int(m) & 1
	return Direction{Source: languages[i], Target: languages[1-i]}
}

// RaffleResult is the outcome of one raffle.
type RaffleResult struct {
	StartNumber   int       `json:"startNumber"`
	EndNumber     int       `json:"endNumber"`
	NumberOfWords int       `json:"numberOfWords"`
	StartPage     int       `json:"startPage"`
	EndPage       int       `json:"endPage"`
	Mode          Mode      `json:"mode"`
	Direction     Direction `json:"direction"`
	DrawnAt       time.Time `json:"drawnAt"`
}
