package matching

// Review is a sequential cursor over a computed match list, used by the
// one-by-one review flow. Rejecting a match has no persisted effect, it
// only advances the cursor to the next candidate.
type Review struct {
	matches []Match
	cursor  int
}

// NewReview returns a cursor over the matches in their computed order.
func NewReview(matches []Match) *Review {
	return &Review{matches: matches}
}

// Current returns the match under review. The second return value is
// false once all candidates have been reviewed.
func (r *Review) Current() (Match, bool) {
	if r.cursor >= len(r.matches) {
		return Match{}, false
	}
	return r.matches[r.cursor], true
}

// Reject skips the current candidate and moves on.
func (r *Review) Reject() {
	if r.cursor < len(r.matches) {
		r.cursor++
	}
}

// Remaining returns the number of candidates left to review, including
// the current one.
func (r *Review) Remaining() int {
	return len(r.matches) - r.cursor
}
