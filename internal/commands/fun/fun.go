// Package fun provides /dice, /coinflip and /8ball.
package fun

import (
	"math/rand/v2"

	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

const (
	maxDice = 10
	sides   = 6
)

// Rand returns a number in [0, n)
type Rand func(n int) int

var rnd Rand = rand.IntN

// DiceFaces maps a roll (1-6) to its emoji at index roll-1
var DiceFaces = []string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

// Coin sides
const (
	Heads = "Cara"
	Tails = "Cruz"
)

// Answers are the 8ball replies: positive, uncertain, negative, then retry
var Answers = []string{
	"Sí, definitivamente.",
	"Es cierto.",
	"Sin duda.",
	"Quizás.",
	"No estoy seguro.",
	"Pregunta más tarde.",
	"No.",
	"Mis fuentes dicen que no.",
	"Muy dudoso.",
	"Vuelve a intentarlo.",
}

// RollDice rolls count six-sided dice, clamping count to 1..10
func RollDice(count int, r Rand) []int {
	count = max(1, min(count, maxDice))
	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = r(sides) + 1
	}
	return rolls
}

// FlipCoin returns Heads or Tails
func FlipCoin(r Rand) string {
	if r(2) == 0 {
		return Heads
	}
	return Tails
}

// EightBall picks an answer
func EightBall(r Rand) string {
	return Answers[r(len(Answers))]
}

// RegisterFunCommands registers the fun commands as top-level commands
func RegisterFunCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createDiceCommand())
	client.CommandHandler.RegisterCommand(createCoinflipCommand())
	client.CommandHandler.RegisterCommand(createEightBallCommand())
}
