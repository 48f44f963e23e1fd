package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Tier is the ordered difficulty classification of content.
type Tier int

const (
	TierBeginner Tier = iota
	TierIntermediate
	TierAdvanced
	TierExpert
)

var tierNames = [...]string{"beginner", "intermediate", "advanced", "expert"}

func (t Tier) Valid() bool { return t >= TierBeginner && t <= TierExpert }

func (t Tier) String() string {
	if !t.Valid() {
		return tierNames[TierBeginner]
	}
	return tierNames[t]
}

// Next steps one tier up, clamped at expert.
func (t Tier) Next() Tier {
	if !t.Valid() {
		return TierBeginner
	}
	if t == TierExpert {
		return TierExpert
	}
	return t + 1
}

// Prev steps one tier down, clamped at beginner.
func (t Tier) Prev() Tier {
	if !t.Valid() || t == TierBeginner {
		return TierBeginner
	}
	return t - 1
}

// ParseTier maps a tier name to its value. Unknown names are an error.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return TierBeginner, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, s)
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the tier by name so the column stays readable.
func (t Tier) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *Tier) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = TierBeginner
		return nil
	case string:
		parsed, err := ParseTier(v)
		*t = parsed
		return err
	case []byte:
		parsed, err := ParseTier(string(v))
		*t = parsed
		return err
	default:
		return fmt.Errorf("domain: cannot scan %T into Tier", src)
	}
}

// RecommendedDifficulty maps a category-level average score to the tier a fresh path should target.
func RecommendedDifficulty(avgScore float64) Tier {
	switch {
	case avgScore >= 90:
		return TierAdvanced.Next()
	case avgScore >= 75:
		return TierIntermediate.Next()
	case avgScore >= 60:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// AdjustTier reacts to a single quiz score: >=90 steps up, <=40 steps down, anything else holds.
func AdjustTier(current Tier, score float64) Tier {
	if !current.Valid() {
		current = TierBeginner
	}
	switch {
	case score >= 90:
		return current.Next()
	case score <= 40:
		return current.Prev()
	default:
		return current
	}
}
