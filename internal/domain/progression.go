package domain

import "time"

// Input length bounds, enforced at validation (storage never truncates).
const (
	MaxProfileNameLen     = 32
	MaxQuizIDLen          = 64
	MaxAchievementIDLen   = 64
	MaxAchievementNameLen = 128
)

// StreakWindow is the maximum gap between activities that still counts as a
// consecutive engagement interval.
const StreakWindow = 24 * time.Hour

// XPPerLevel is the amount of experience that advances one level.
const XPPerLevel = 100

const (
	xpPerCorrectAnswer = 10
	perfectScoreBonus  = 50
)

// QuizXP computes the experience earned by a quiz attempt: 10 XP per correct
// answer plus a flat bonus for a perfect score.
func QuizXP(score, totalQuestions uint8) uint64 {
	earned := uint64(score) * xpPerCorrectAnswer
	if score == totalQuestions {
		earned += perfectScoreBonus
	}
	return earned
}

// LevelFor derives the level for an XP total. Every 100 XP is one level,
// starting at level 1.
func LevelFor(xp uint64) uint64 {
	return xp/XPPerLevel + 1
}

// NextStreak applies the streak transition: another qualifying activity
// within the window extends the streak, anything later restarts it at 1.
func NextStreak(streak uint64, elapsed time.Duration) uint64 {
	if elapsed <= StreakWindow {
		return streak + 1
	}
	return 1
}
