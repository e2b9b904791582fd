package domain

import (
	"encoding/json"
	"fmt"
)

// Tier is the ordered achievement rarity classification.
type Tier uint8

const (
	TierBronze Tier = iota
	TierSilver
	TierGold
	TierPlatinum
)

// tierBonus maps each tier to the XP awarded alongside the achievement.
var tierBonus = map[Tier]uint64{
	TierBronze:   50,
	TierSilver:   100,
	TierGold:     200,
	TierPlatinum: 500,
}

// BonusFor returns the XP bonus for a tier, or 0 for an unknown tier.
func BonusFor(t Tier) uint64 {
	return tierBonus[t]
}

var tierNames = map[Tier]string{
	TierBronze:   "Bronze",
	TierSilver:   "Silver",
	TierGold:     "Gold",
	TierPlatinum: "Platinum",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// ParseTier converts a tier name into its Tier value.
func ParseTier(name string) (Tier, error) {
	for tier, n := range tierNames {
		if n == name {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tier %q", ErrInvalidArgument, name)
}

// MarshalJSON encodes the tier by name so stored records stay readable.
func (t Tier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown tier %d", ErrInvalidArgument, uint8(t))
	}
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	tier, err := ParseTier(name)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}
