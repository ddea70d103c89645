package bot

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DefaultDepth is the search depth of the hard preset.
const DefaultDepth = 5

var difficultyDepth = map[Difficulty]int{
	Easy:   1,
	Medium: 3,
	Hard:   DefaultDepth,
}

var botNames = map[Difficulty]string{
	Easy:   "Alice",
	Medium: "Bob",
	Hard:   "Charles",
}

// Depth returns the plies searched for the preset. Unknown values get the
// hard preset.
func (d Difficulty) Depth() int {
	if depth, ok := difficultyDepth[d]; ok {
		return depth
	}
	return DefaultDepth
}

// BotName is the display name of the automated opponent.
func (d Difficulty) BotName() string {
	if name, ok := botNames[d]; ok {
		return name
	}
	return "BOT"
}

func ParseDifficulty(value string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := difficultyDepth[d]; !ok {
		return Hard, fmt.Errorf("invalid difficulty %q", value)
	}
	return d, nil
}
