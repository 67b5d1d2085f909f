package review

import "github.com/at-ishikawa/tango/internal/word"

// Session walks one prepared deck from front to back. It tracks only the
// pointer and reveal state; recall updates happen in the store.
type Session struct {
	deck     []*word.Record
	idx      int
	rated    int
	revealed bool
}

// Summary reports how a finished (or abandoned) session went.
type Summary struct {
	Shown int
	Rated int
}

// NewSession starts a session over an already-built deck.
func NewSession(deck []*word.Record) *Session {
	return &Session{deck: deck}
}

// Current returns the card under the pointer, or false once the deck is
// exhausted.
func (s *Session) Current() (*word.Record, bool) {
	if s.idx >= len(s.deck) {
		return nil, false
	}
	return s.deck[s.idx], true
}

// Size returns the number of cards in the deck.
func (s *Session) Size() int {
	return len(s.deck)
}

// Position returns the one-based position of the current card.
func (s *Session) Position() int {
	return s.idx + 1
}

// Revealed reports whether the current card's answer has been exposed.
func (s *Session) Revealed() bool {
	return s.revealed
}

// Reveal exposes the current card's answer.
func (s *Session) Reveal() {
	if _, ok := s.Current(); ok {
		s.revealed = true
	}
}

// Skip advances past the current card without scoring it.
func (s *Session) Skip() {
	if _, ok := s.Current(); ok {
		s.advance()
	}
}

// Rate scores the current card and advances. The answer is revealed first so
// a rating is never applied to an unseen card. The rated record is returned
// for the caller to persist.
func (s *Session) Rate() (*word.Record, bool) {
	record, ok := s.Current()
	if !ok {
		return nil, false
	}
	s.revealed = true
	s.rated++
	s.advance()
	return record, true
}

func (s *Session) advance() {
	s.idx++
	s.revealed = false
}

// Done reports whether every card has been passed.
func (s *Session) Done() bool {
	return s.idx >= len(s.deck)
}

// Summarize returns the shown/rated totals for the session so far.
func (s *Session) Summarize() Summary {
	return Summary{Shown: s.idx, Rated: s.rated}
}
