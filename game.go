package main

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

const (
	maxRounds   = 10
	optionCount = 4
)

// player is one participant's standing. Scores persist across rounds (and
// across a disconnect/reconnect) for the lifetime of the process.
type player struct {
	Name  string
	Score int
}

// question is the state of one round: a card prompt, its trimmed answer, and
// the shuffled multiple-choice options.
type question struct {
	Prompt  string
	Answer  string
	Options []string
}

// normalize maps an identity to its comparison key. Display names keep their
// original casing; readiness and answered tracking are case-insensitive.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// gameState is the round state machine. It holds no locks and never touches
// the registry; the coordinator serializes all mutation and handles fan-out.
type gameState struct {
	active   bool
	round    int
	question *question
	ready    map[string]bool
	answered map[string]bool
	players  []*player          // first-seen order, kept for score tie-breaks
	index    map[string]*player // normalized name -> entry in players
}

func newGameState() *gameState {
	return &gameState{
		ready:    make(map[string]bool),
		answered: make(map[string]bool),
		index:    make(map[string]*player),
	}
}

// ensurePlayer returns the score entry for name, creating it at zero if this
// identity has not been seen before.
func (g *gameState) ensurePlayer(name string) *player {
	key := normalize(name)
	if p, ok := g.index[key]; ok {
		return p
	}
	p := &player{Name: strings.TrimSpace(name)}
	g.players = append(g.players, p)
	g.index[key] = p
	return p
}

func (g *gameState) markReady(name string) {
	g.ensurePlayer(name)
	g.ready[normalize(name)] = true
}

func (g *gameState) unmarkReady(name string) {
	delete(g.ready, normalize(name))
}

func (g *gameState) readyNames() []string {
	names := make([]string, 0, len(g.ready))
	for _, p := range g.players {
		if g.ready[normalize(p.Name)] {
			names = append(names, p.Name)
		}
	}
	return names
}

// allReady reports whether the game may start: at least two connected
// identities, and the ready set exactly equal to the connected set. A single
// unready participant blocks the start.
func (g *gameState) allReady(connected []string) bool {
	set := normalizeSet(connected)
	if len(set) < 2 || len(set) != len(g.ready) {
		return false
	}
	for key := range set {
		if !g.ready[key] {
			return false
		}
	}
	return true
}

// allAnswered reports whether every connected identity has answered the
// current round, which advances the round without waiting for the timer.
func (g *gameState) allAnswered(connected []string) bool {
	set := normalizeSet(connected)
	if len(set) == 0 || len(set) != len(g.answered) {
		return false
	}
	for key := range set {
		if !g.answered[key] {
			return false
		}
	}
	return true
}

func normalizeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[normalize(name)] = true
	}
	return set
}

// chooseQuestion starts the next round from the corpus: one card uniformly
// at random, its answer plus three distractors sampled from the other cards,
// padded with labeled variants when the corpus is too small, shuffled.
// Returns false when the corpus is empty.
func (g *gameState) chooseQuestion(corpus []Card) (*question, bool) {
	if len(corpus) == 0 {
		return nil, false
	}

	card := corpus[rand.IntN(len(corpus))]
	answer := strings.TrimSpace(card.Back)

	seen := map[string]bool{answer: true}
	distractors := make([]string, 0, len(corpus))
	for _, c := range corpus {
		alt := strings.TrimSpace(c.Back)
		if seen[alt] {
			continue
		}
		seen[alt] = true
		distractors = append(distractors, alt)
	}

	rand.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > optionCount-1 {
		distractors = distractors[:optionCount-1]
	}

	options := append([]string{answer}, distractors...)
	for variant := 2; len(options) < optionCount; variant++ {
		filler := fmt.Sprintf("%s (variant %d)", answer, variant)
		if seen[filler] {
			continue
		}
		seen[filler] = true
		options = append(options, filler)
	}

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	g.round++
	g.answered = make(map[string]bool)
	g.question = &question{
		Prompt:  card.Front,
		Answer:  answer,
		Options: options,
	}

	return g.question, true
}

// checkAnswer adjudicates one submission. counted is false when there is no
// active round or this identity already answered; a second submission in the
// same round never scores twice. Matching is trimmed and case-sensitive.
func (g *gameState) checkAnswer(name, submitted string) (counted, correct bool) {
	if !g.active || g.question == nil {
		return false, false
	}

	key := normalize(name)
	if g.answered[key] {
		return false, false
	}
	g.answered[key] = true

	correct = strings.TrimSpace(submitted) == g.question.Answer
	if correct {
		g.ensurePlayer(name).Score++
	}
	return true, correct
}

// sortedScores returns all standings, best first. Ties keep first-seen
// order: the sort is stable and players are stored in join order.
func (g *gameState) sortedScores() []ScoreEntry {
	ordered := make([]*player, len(g.players))
	copy(ordered, g.players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	scores := make([]ScoreEntry, 0, len(ordered))
	for _, p := range ordered {
		scores = append(scores, ScoreEntry{Username: p.Name, Score: p.Score})
	}
	return scores
}

// clearReady empties the ready set once the start countdown has elapsed.
func (g *gameState) clearReady() {
	g.ready = make(map[string]bool)
}

// resetForNewGame returns to the lobby. Scores survive; everything round-
// or readiness-scoped is cleared.
func (g *gameState) resetForNewGame() {
	g.active = false
	g.round = 0
	g.question = nil
	g.ready = make(map[string]bool)
	g.answered = make(map[string]bool)
}

// cleanupParticipant forgets a departed identity's readiness and answered
// mark but keeps its score in case it reconnects mid-game.
func (g *gameState) cleanupParticipant(name string) {
	key := normalize(name)
	delete(g.ready, key)
	delete(g.answered, key)
}
