// Package pairing maintains pairwise win/loss aggregates over an append-only
// match history: for any two players, how often they shared a side, how often
// they opposed each other, and who won. Rows are keyed by the canonical
// ordering of the pair, so (a,b) and (b,a) always hit the same row.
package pairing

import "errors"

// ErrInvalidPair is returned when a pair operation receives the same player
// identifier twice. A caller bug, never retried.
var ErrInvalidPair = errors.New("pairing: pair requires two distinct players")

// ErrMatchUndecided is returned by Apply for matches without a resolved
// winner; undecided matches carry no aggregate information.
var ErrMatchUndecided = errors.New("pairing: match has no winning side")

// Canonicalize orders two player identifiers so the smaller comes first.
// Both argument orders yield the same canonical pair.
func Canonicalize(a, b int64) (low, high int64, err error) {
	if a == b {
		return 0, 0, ErrInvalidPair
	}
	if a < b {
		return a, b, nil
	}
	return b, a, nil
}
