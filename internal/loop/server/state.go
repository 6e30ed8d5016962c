package server

import (
	"cmp"
	"slices"
	"time"

	"github.com/tomz197/vrarcade/internal/loop"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	clientID int    // Used for deterministic tie-break when scores are equal
}

// SessionSummary is one connected session inside a WorldSnapshot.
type SessionSummary struct {
	ClientID int           `json:"client"`
	Username string        `json:"username"`
	Snapshot loop.Snapshot `json:"game"`
}

// WorldSnapshot is an immutable view of every session, safe to share.
type WorldSnapshot struct {
	Sessions  []SessionSummary `json:"sessions"`
	Players   int              `json:"players"`
	Playing   int              `json:"playing"`
	TopScores []TopScoreEntry  `json:"topScores"` // Top N scores for leaderboard display
	At        time.Time        `json:"at"`
}

// insertTopScore adds e to a leaderboard sorted by score, keeping one entry
// per client and at most n entries.
func insertTopScore(board []TopScoreEntry, e TopScoreEntry, n int) []TopScoreEntry {
	for i, cur := range board {
		if cur.clientID == e.clientID {
			if cur.Score >= e.Score {
				return board
			}
			board = slices.Delete(board, i, i+1)
			break
		}
	}
	i, _ := slices.BinarySearchFunc(board, e, compareTopScores)
	board = slices.Insert(board, i, e)
	if len(board) > n {
		board = board[:n]
	}
	return board
}

// compareTopScores orders higher scores first, then older clients.
func compareTopScores(a, b TopScoreEntry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.clientID, b.clientID)
}

func sortSessions(s []SessionSummary) {
	slices.SortFunc(s, func(a, b SessionSummary) int {
		return cmp.Compare(a.ClientID, b.ClientID)
	})
}
