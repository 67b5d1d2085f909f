// Package review builds study decks from vocabulary records and advances
// their recall state as the user rates each card.
package review

import (
	"fmt"
	"time"

	"github.com/at-ishikawa/tango/internal/word"
)

// Rating is the user's self-assessment of one recall attempt.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ParseRating converts CLI input into a rating. Single digits 1-4 are
// accepted as shorthand.
func ParseRating(input string) (Rating, error) {
	switch input {
	case "1", string(RatingAgain):
		return RatingAgain, nil
	case "2", string(RatingHard):
		return RatingHard, nil
	case "3", string(RatingGood):
		return RatingGood, nil
	case "4", string(RatingEasy):
		return RatingEasy, nil
	}
	return "", fmt.Errorf("unknown rating %q", input)
}

// Intervals holds the due-date offset applied by each rating. These are
// fixed offsets, not an adaptive algorithm, so they stay configurable.
type Intervals struct {
	Again        time.Duration `yaml:"again" mapstructure:"again" validate:"min=0"`
	Hard         time.Duration `yaml:"hard" mapstructure:"hard" validate:"min=0"`
	Good         time.Duration `yaml:"good" mapstructure:"good" validate:"min=0"`
	Easy         time.Duration `yaml:"easy" mapstructure:"easy" validate:"min=0"`
	EasyMastered time.Duration `yaml:"easy_mastered" mapstructure:"easy_mastered" validate:"min=0"`
}

// DefaultIntervals returns the offsets used when no configuration file
// overrides them.
func DefaultIntervals() Intervals {
	return Intervals{
		Again:        10 * time.Minute,
		Hard:         24 * time.Hour,
		Good:         3 * 24 * time.Hour,
		Easy:         7 * 24 * time.Hour,
		EasyMastered: 14 * 24 * time.Hour,
	}
}

// ApplyRating recomputes the record's level and due date in place. Again
// keeps the level; every other rating raises it, capped at the maximum.
// A mastered record rated easy earns the longer interval.
func ApplyRating(record *word.Record, rating Rating, intervals Intervals, now time.Time) {
	var offset time.Duration
	switch rating {
	case RatingAgain:
		offset = intervals.Again
	case RatingHard:
		record.Level = word.ClampLevel(record.Level + 1)
		offset = intervals.Hard
	case RatingGood:
		record.Level = word.ClampLevel(record.Level + 1)
		offset = intervals.Good
	case RatingEasy:
		record.Level = word.ClampLevel(record.Level + 1)
		offset = intervals.Easy
		if record.Level == word.MaxLevel {
			offset = intervals.EasyMastered
		}
	default:
		return
	}
	record.DueAt = now.Add(offset).UnixMilli()
}
