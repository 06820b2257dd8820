package runner

import "math/rand"

// QuipKind selects a quip list.
type QuipKind int

const (
	QuipCoffee QuipKind = iota
	QuipHit
	QuipNewBest
	QuipMilestone
)

var quipLists = map[QuipKind][]string{
	QuipCoffee: {
		"GM energy +10",
		"Caffeinated!",
		"LFG juice!",
		"Maximum cope acquired",
		"Bullish beans!",
	},
	QuipHit: {
		"Rugged by gravity",
		"Paper handed that landing",
		"Wen recovery?",
		"Down bad rn",
		"NGMI moment",
	},
	QuipNewBest: {
		"Goated.",
		"WAGMI energy",
		"Built different",
		"Trenches certified",
		"Diamond hooves!",
	},
}

// milestoneQuips are keyed by threshold; thresholds without one get a
// random pick from the new-best list.
var milestoneQuips = map[int]string{
	1000:  "1000! Still going!",
	5000:  "5000! Absolute unit!",
	10000: "10000! Legendary run!",
}

// Quips picks on-screen messages from a seeded source.
type Quips struct {
	rng *rand.Rand
}

// NewQuips creates a quip picker.
func NewQuips(seed int64) *Quips {
	return &Quips{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a random quip of kind.
func (q *Quips) Pick(kind QuipKind) string {
	list := quipLists[kind]
	if len(list) == 0 {
		return ""
	}
	return list[q.rng.Intn(len(list))]
}

// Milestone returns the quip for a score threshold.
func (q *Quips) Milestone(threshold int) string {
	if s, ok := milestoneQuips[threshold]; ok {
		return s
	}
	return q.Pick(QuipNewBest)
}
