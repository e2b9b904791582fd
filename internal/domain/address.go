package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// RecordKind tags the shape of a stored record and seeds its address.
type RecordKind string

const (
	KindProfile     RecordKind = "user_profile"
	KindQuizResult  RecordKind = "quiz_result"
	KindAchievement RecordKind = "achievement"
)

// Address is the deterministic location of a record, derived purely from its
// seeds. Addresses are never stored independently; any party that knows the
// seeds can recompute them.
type Address string

// DeriveAddress maps (kind, owner, discriminator) to a stable address.
// Seeds are separated by a NUL byte so that concatenation cannot make two
// distinct seed tuples collide.
func DeriveAddress(kind RecordKind, owner, discriminator string) Address {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(owner))
	h.Write([]byte{0})
	h.Write([]byte(discriminator))
	return Address(hex.EncodeToString(h.Sum(nil)))
}

// ProfileAddress locates the single Profile record for an owner.
func ProfileAddress(owner string) Address {
	return DeriveAddress(KindProfile, owner, "")
}

// QuizResultAddress locates the QuizResult for (owner, quiz id).
func QuizResultAddress(owner, quizID string) Address {
	return DeriveAddress(KindQuizResult, owner, quizID)
}

// AchievementAddress locates the Achievement for (owner, achievement id).
func AchievementAddress(owner, achievementID string) Address {
	return DeriveAddress(KindAchievement, owner, achievementID)
}
