package domain

import "time"

// Profile is the single per-owner progress record. It is created once and
// mutated by quiz submissions, achievement awards, and streak check-ins.
type Profile struct {
	Owner              string    `json:"owner"`
	Name               string    `json:"name"`
	XP                 uint64    `json:"xp"`
	Level              uint64    `json:"level"`
	Streak             uint64    `json:"streak"`
	QuizzesCompleted   uint64    `json:"quizzesCompleted"`
	AchievementsEarned uint64    `json:"achievementsEarned"`
	CreatedAt          time.Time `json:"createdAt"`
	LastActive         time.Time `json:"lastActive"`
}

// QuizResult records a single quiz attempt. Immutable once written; one
// record per (owner, quiz id).
type QuizResult struct {
	Owner          string    `json:"owner"`
	QuizID         string    `json:"quizId"`
	Score          uint8     `json:"score"`
	TotalQuestions uint8     `json:"totalQuestions"`
	XPEarned       uint64    `json:"xpEarned"`
	CompletedAt    time.Time `json:"completedAt"`
}

// Achievement records a single earned badge. Immutable once written; one
// record per (owner, achievement id).
type Achievement struct {
	Owner         string    `json:"owner"`
	AchievementID string    `json:"achievementId"`
	Name          string    `json:"name"`
	Tier          Tier      `json:"tier"`
	AwardedAt     time.Time `json:"awardedAt"`
}
