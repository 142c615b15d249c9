package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus(n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, Card{
			ID:    int64(i + 1),
			Front: fmt.Sprintf("question %d", i+1),
			Back:  fmt.Sprintf("answer %d", i+1),
			SetID: 1,
		})
	}
	return cards
}

func TestAllReady(t *testing.T) {
	tests := []struct {
		name      string
		ready     []string
		connected []string
		want      bool
	}{
		{
			name:      "empty lobby",
			ready:     nil,
			connected: nil,
			want:      false,
		},
		{
			name:      "single ready player is below quorum",
			ready:     []string{"alice"},
			connected: []string{"alice"},
			want:      false,
		},
		{
			name:      "two connected, both ready",
			ready:     []string{"alice", "bob"},
			connected: []string{"alice", "bob"},
			want:      true,
		},
		{
			name:      "one unready connected player blocks start",
			ready:     []string{"alice", "bob"},
			connected: []string{"alice", "bob", "carol"},
			want:      false,
		},
		{
			name:      "stale ready mark for a departed player blocks start",
			ready:     []string{"alice", "bob", "carol"},
			connected: []string{"alice", "bob"},
			want:      false,
		},
		{
			name:      "comparison is trimmed and case-insensitive",
			ready:     []string{"Alice", "BOB"},
			connected: []string{" alice ", "bob"},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGameState()
			for _, name := range tt.ready {
				g.markReady(name)
			}
			assert.Equal(t, tt.want, g.allReady(tt.connected))
		})
	}
}

func TestMarkReadyCreatesScoreEntry(t *testing.T) {
	g := newGameState()
	g.markReady("alice")

	scores := g.sortedScores()
	require.Len(t, scores, 1)
	assert.Equal(t, "alice", scores[0].Username)
	assert.Equal(t, 0, scores[0].Score)

	g.unmarkReady("alice")
	assert.Empty(t, g.readyNames())
	assert.Len(t, g.sortedScores(), 1, "unready should not delete the score entry")
}

func TestCheckAnswer(t *testing.T) {
	g := newGameState()
	g.active = true
	_, ok := g.chooseQuestion([]Card{{Front: "largest planet?", Back: "Jupiter"}})
	require.True(t, ok)

	counted, correct := g.checkAnswer("alice", "  Jupiter  ")
	assert.True(t, counted)
	assert.True(t, correct, "answer comparison should trim whitespace")

	counted, correct = g.checkAnswer("alice", "Jupiter")
	assert.False(t, counted, "second answer in the same round is not counted")
	assert.False(t, correct)

	counted, correct = g.checkAnswer("bob", "jupiter")
	assert.True(t, counted)
	assert.False(t, correct, "answer comparison is case-sensitive")

	scores := g.sortedScores()
	require.Len(t, scores, 2)
	assert.Equal(t, "alice", scores[0].Username)
	assert.Equal(t, 1, scores[0].Score, "score increments at most once per round")
	assert.Equal(t, 0, scores[1].Score)
}

func TestCheckAnswerRequiresActiveRound(t *testing.T) {
	g := newGameState()

	counted, _ := g.checkAnswer("alice", "anything")
	assert.False(t, counted, "inactive game")

	g.active = true
	counted, _ = g.checkAnswer("alice", "anything")
	assert.False(t, counted, "no current question")
}

func TestAllAnswered(t *testing.T) {
	g := newGameState()
	g.active = true
	_, ok := g.chooseQuestion(testCorpus(5))
	require.True(t, ok)

	connected := []string{"alice", "bob"}
	assert.False(t, g.allAnswered(connected))

	g.checkAnswer("alice", "whatever")
	assert.False(t, g.allAnswered(connected))

	g.checkAnswer("Bob", "whatever")
	assert.True(t, g.allAnswered(connected), "matching is case-insensitive")

	assert.False(t, g.allAnswered(nil), "nobody connected never counts as all answered")
}

func TestChooseQuestion(t *testing.T) {
	tests := []struct {
		name        string
		corpus      []Card
		wantFillers int
	}{
		{name: "large corpus", corpus: testCorpus(10), wantFillers: 0},
		{name: "two distinct answers", corpus: testCorpus(2), wantFillers: 2},
		{name: "single answer", corpus: testCorpus(1), wantFillers: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGameState()
			q, ok := g.chooseQuestion(tt.corpus)
			require.True(t, ok)

			require.Len(t, q.Options, optionCount)
			assert.Contains(t, q.Options, q.Answer)

			unique := make(map[string]bool)
			fillers := 0
			for _, option := range q.Options {
				unique[option] = true
				if strings.Contains(option, "(variant ") {
					fillers++
				}
			}
			assert.Len(t, unique, optionCount, "options must be distinct")
			assert.Equal(t, tt.wantFillers, fillers)
		})
	}
}

func TestChooseQuestionEmptyCorpus(t *testing.T) {
	g := newGameState()
	q, ok := g.chooseQuestion(nil)
	assert.False(t, ok)
	assert.Nil(t, q)
}

func TestChooseQuestionResetsAnsweredAndBumpsRound(t *testing.T) {
	g := newGameState()
	g.active = true

	_, ok := g.chooseQuestion(testCorpus(5))
	require.True(t, ok)
	assert.Equal(t, 1, g.round)

	g.checkAnswer("alice", "whatever")

	_, ok = g.chooseQuestion(testCorpus(5))
	require.True(t, ok)
	assert.Equal(t, 2, g.round)

	counted, _ := g.checkAnswer("alice", "whatever")
	assert.True(t, counted, "answered marks reset every round")
}

func TestSortedScoresStable(t *testing.T) {
	g := newGameState()
	g.ensurePlayer("alice")
	g.ensurePlayer("bob")
	g.ensurePlayer("carol")
	g.index["carol"].Score = 2
	g.index["alice"].Score = 1
	g.index["bob"].Score = 1

	want := []ScoreEntry{
		{Username: "carol", Score: 2},
		{Username: "alice", Score: 1},
		{Username: "bob", Score: 1},
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, want, g.sortedScores(), "ties keep first-seen order across repeated calls")
	}
}

func TestResetForNewGameKeepsScores(t *testing.T) {
	g := newGameState()
	g.active = true
	g.markReady("alice")
	g.markReady("bob")
	_, ok := g.chooseQuestion(testCorpus(5))
	require.True(t, ok)
	g.checkAnswer("alice", "answer 1")

	g.resetForNewGame()

	assert.False(t, g.active)
	assert.Zero(t, g.round)
	assert.Nil(t, g.question)
	assert.Empty(t, g.readyNames())
	assert.False(t, g.allAnswered([]string{"alice"}))
	assert.Len(t, g.sortedScores(), 2)
}

func TestCleanupParticipantKeepsScore(t *testing.T) {
	g := newGameState()
	g.active = true
	g.markReady("alice")
	_, ok := g.chooseQuestion([]Card{{Front: "q", Back: "a"}})
	require.True(t, ok)
	g.checkAnswer("alice", "a")

	g.cleanupParticipant("alice")

	assert.Empty(t, g.readyNames())
	assert.False(t, g.answered["alice"])
	scores := g.sortedScores()
	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].Score, "scores survive a disconnect")
}
