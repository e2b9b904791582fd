package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestQuizXP(t *testing.T) {
	cases := []struct {
		score, total uint8
		want         uint64
	}{
		{8, 10, 80},
		{10, 10, 150}, // perfect score bonus
		{0, 5, 0},
		{0, 0, 50}, // zero-question quiz still counts as perfect
	}
	for _, c := range cases {
		if got := QuizXP(c.score, c.total); got != c.want {
			t.Fatalf("QuizXP(%d,%d) = %d, want %d", c.score, c.total, got, c.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		xp, want uint64
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{240, 3},
		{1337, 14},
	}
	for _, c := range cases {
		if got := LevelFor(c.xp); got != c.want {
			t.Fatalf("LevelFor(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestNextStreak(t *testing.T) {
	if got := NextStreak(3, time.Hour); got != 4 {
		t.Fatalf("expected streak 4 within window, got %d", got)
	}
	if got := NextStreak(3, StreakWindow); got != 4 {
		t.Fatalf("expected streak 4 at exact window boundary, got %d", got)
	}
	if got := NextStreak(3, StreakWindow+time.Second); got != 1 {
		t.Fatalf("expected streak reset past window, got %d", got)
	}
}

func TestTierBonusTable(t *testing.T) {
	want := map[Tier]uint64{
		TierBronze:   50,
		TierSilver:   100,
		TierGold:     200,
		TierPlatinum: 500,
	}
	for tier, bonus := range want {
		if got := BonusFor(tier); got != bonus {
			t.Fatalf("bonus for %s = %d, want %d", tier, got, bonus)
		}
	}
	if got := BonusFor(Tier(9)); got != 0 {
		t.Fatalf("expected 0 bonus for unknown tier, got %d", got)
	}
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("Gold")
	if err != nil || tier != TierGold {
		t.Fatalf("ParseTier(Gold) = %v, %v", tier, err)
	}
	if _, err := ParseTier("Diamond"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}

func TestTierJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(TierPlatinum)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"Platinum"` {
		t.Fatalf("expected tier by name, got %s", data)
	}
	var tier Tier
	if err := json.Unmarshal(data, &tier); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tier != TierPlatinum {
		t.Fatalf("round trip changed tier: %v", tier)
	}
}
