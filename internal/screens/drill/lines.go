package drill

import "math/rand"

// Rotating lines shown during play. Tips appear under the question,
// praise and encouragement title the feedback card.
var tips = []string{
	"Try skip counting! 4, 8, 12, 16...",
	"Zero times anything is zero!",
	"Tens are easy: add a zero at the end!",
	"Fives end with 0 or 5!",
	"Practice makes progress!",
	"Nine trick: digits add to 9!",
}

var praise = []string{
	"Correct!",
	"Awesome!",
	"You nailed it!",
	"Yes! Great work!",
	"Boom! Math star!",
}

var encouragement = []string{
	"Nice try!",
	"Keep going! You've got this!",
	"So close! Try the next one!",
	"Don't give up!",
	"Every try makes you stronger!",
}

func randomTip(rng *rand.Rand) string {
	return tips[rng.Intn(len(tips))]
}

func randomPraise(rng *rand.Rand) string {
	return praise[rng.Intn(len(praise))]
}

func randomEncouragement(rng *rand.Rand) string {
	return encouragement[rng.Intn(len(encouragement))]
}
