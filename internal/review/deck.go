package review

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/at-ishikawa/tango/internal/word"
)

// Scope selects which records are eligible for a session.
type Scope string

const (
	ScopeAll Scope = "all"
	ScopeDue Scope = "due"
)

// LevelFilter narrows a session to records still being learned.
type LevelFilter string

const (
	LevelAll       LevelFilter = "all"
	LevelZero      LevelFilter = "0"
	LevelAtMostOne LevelFilter = "le1"
	LevelAtMostTwo LevelFilter = "le2"
)

func (filter LevelFilter) matches(level int) bool {
	switch filter {
	case LevelZero:
		return level == 0
	case LevelAtMostOne:
		return level <= 1
	case LevelAtMostTwo:
		return level <= 2
	}
	return true
}

// Order selects how an eligible set is arranged before truncation.
type Order string

const (
	OrderShuffle Order = "shuffle"
	OrderDue     Order = "due"
	OrderNew     Order = "new"
	OrderInput   Order = "input"
)

// DefaultDeckSize bounds a session when no configuration overrides it.
const DefaultDeckSize = 20

// DeckConfig describes how to build one session deck.
type DeckConfig struct {
	Scope Scope
	Level LevelFilter
	Order Order
	Limit int
}

// ValidateDeckConfig rejects unknown scope, level, and order values at the
// CLI boundary.
func ValidateDeckConfig(config DeckConfig) error {
	switch config.Scope {
	case ScopeAll, ScopeDue:
	default:
		return fmt.Errorf("unknown scope %q", config.Scope)
	}
	switch config.Level {
	case LevelAll, LevelZero, LevelAtMostOne, LevelAtMostTwo:
	default:
		return fmt.Errorf("unknown level filter %q", config.Level)
	}
	switch config.Order {
	case OrderShuffle, OrderDue, OrderNew, OrderInput:
	default:
		return fmt.Errorf("unknown order %q", config.Order)
	}
	if config.Limit < 1 {
		return fmt.Errorf("deck size must be positive, got %d", config.Limit)
	}
	return nil
}

// BuildDeck filters, orders, and truncates the given records into a session
// deck. Records without a translation are never included since the recall
// test is translation-centric.
func BuildDeck(records []*word.Record, config DeckConfig, now time.Time) []*word.Record {
	deck := make([]*word.Record, 0, len(records))
	for _, record := range records {
		if !record.Active() || record.JaText == "" {
			continue
		}
		if config.Scope == ScopeDue && !record.IsDue(now) {
			continue
		}
		if !config.Level.matches(record.Level) {
			continue
		}
		deck = append(deck, record)
	}

	switch config.Order {
	case OrderShuffle:
		rand.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
	case OrderDue:
		sort.SliceStable(deck, func(i, j int) bool {
			return deck[i].DueAt < deck[j].DueAt
		})
	case OrderNew:
		sort.SliceStable(deck, func(i, j int) bool {
			return deck[i].CreatedAt > deck[j].CreatedAt
		})
	}

	if config.Limit > 0 && len(deck) > config.Limit {
		deck = deck[:config.Limit]
	}
	return deck
}
