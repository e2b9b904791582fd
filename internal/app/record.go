package app

import (
	"context"

	"github.com/Anuragt1104/solmentor/internal/domain"
)

// Record is the storage envelope: a typed payload at its derived address.
// Data holds a *domain.Profile, *domain.QuizResult, or *domain.Achievement
// matching Kind; stores serialize it as JSON.
type Record struct {
	Address domain.Address
	Kind    domain.RecordKind
	Owner   string
	Data    any
}

// Mutation is the unit of change a store must apply atomically: every create
// and update lands, or nothing does. A create at an occupied address fails
// the whole mutation with domain.ErrAlreadyExists.
type Mutation struct {
	Creates []Record
	Updates []Record
}

// RecordStore is the durable state backing the ledger.
type RecordStore interface {
	LoadProfile(ctx context.Context, addr domain.Address) (domain.Profile, error)
	LoadQuizResult(ctx context.Context, addr domain.Address) (domain.QuizResult, error)
	LoadAchievement(ctx context.Context, addr domain.Address) (domain.Achievement, error)
	Exists(ctx context.Context, addr domain.Address) (bool, error)
	Commit(ctx context.Context, mut Mutation) error
}

// ProfileReader serves profile reads. Every RecordStore satisfies it; a
// cache may stand in on the read path, but only there — mutations always
// load from the store itself.
type ProfileReader interface {
	LoadProfile(ctx context.Context, addr domain.Address) (domain.Profile, error)
}

// ProfileRecord wraps a Profile for storage at its derived address.
func ProfileRecord(p domain.Profile) Record {
	return Record{
		Address: domain.ProfileAddress(p.Owner),
		Kind:    domain.KindProfile,
		Owner:   p.Owner,
		Data:    &p,
	}
}

// QuizResultRecord wraps a QuizResult for storage at its derived address.
func QuizResultRecord(r domain.QuizResult) Record {
	return Record{
		Address: domain.QuizResultAddress(r.Owner, r.QuizID),
		Kind:    domain.KindQuizResult,
		Owner:   r.Owner,
		Data:    &r,
	}
}

// AchievementRecord wraps an Achievement for storage at its derived address.
func AchievementRecord(a domain.Achievement) Record {
	return Record{
		Address: domain.AchievementAddress(a.Owner, a.AchievementID),
		Kind:    domain.KindAchievement,
		Owner:   a.Owner,
		Data:    &a,
	}
}
