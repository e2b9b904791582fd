package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Anuragt1104/solmentor/internal/domain"
)

// Ledger is the state-transition processor for the learning-progress records.
// Every operation validates its preconditions against the current store state
// and then applies its full effect as one atomic commit; a failed check
// leaves the store untouched.
type Ledger struct {
	store  RecordStore
	reader ProfileReader
	now    func() time.Time
}

func NewLedger(store RecordStore) *Ledger {
	return NewLedgerWithClock(store, time.Now)
}

// NewLedgerWithClock allows deterministic timestamps in tests. The ledger
// never invents time; every transition reads the injected clock once.
func NewLedgerWithClock(store RecordStore, now func() time.Time) *Ledger {
	return &Ledger{store: store, reader: store, now: now}
}

// NewLedgerWithReader routes GetProfile through reader. Mutations keep
// loading from the store directly, so a cached profile can never feed a
// commit and roll experience back.
func NewLedgerWithReader(store RecordStore, reader ProfileReader) *Ledger {
	ledger := NewLedger(store)
	ledger.reader = reader
	return ledger
}

// CreateProfile allocates the single Profile record for the caller.
func (l *Ledger) CreateProfile(ctx context.Context, owner, name string) (domain.Profile, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.Profile{}, err
	}
	if err := validateBoundedText("name", name, domain.MaxProfileNameLen); err != nil {
		return domain.Profile{}, err
	}

	addr := domain.ProfileAddress(owner)
	exists, err := l.store.Exists(ctx, addr)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("check profile: %w", err)
	}
	if exists {
		return domain.Profile{}, fmt.Errorf("%w: profile for %s", domain.ErrAlreadyExists, owner)
	}

	now := l.now()
	profile := domain.Profile{
		Owner:      owner,
		Name:       name,
		XP:         0,
		Level:      1,
		Streak:     0,
		CreatedAt:  now,
		LastActive: now,
	}
	if err := l.store.Commit(ctx, Mutation{Creates: []Record{ProfileRecord(profile)}}); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// SubmitQuiz records a quiz attempt and applies its rewards to the profile.
// A quiz id can be submitted at most once per owner; the second attempt
// collides at the result address and nothing is written.
func (l *Ledger) SubmitQuiz(ctx context.Context, owner, quizID string, score, totalQuestions uint8) (domain.Profile, domain.QuizResult, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.Profile{}, domain.QuizResult{}, err
	}
	if err := validateBoundedText("quiz id", quizID, domain.MaxQuizIDLen); err != nil {
		return domain.Profile{}, domain.QuizResult{}, err
	}
	if score > totalQuestions {
		return domain.Profile{}, domain.QuizResult{}, fmt.Errorf("%w: %d/%d", domain.ErrInvalidScore, score, totalQuestions)
	}

	profile, err := l.store.LoadProfile(ctx, domain.ProfileAddress(owner))
	if err != nil {
		return domain.Profile{}, domain.QuizResult{}, err
	}
	if err := checkOwnership(profile.Owner, owner); err != nil {
		return domain.Profile{}, domain.QuizResult{}, err
	}

	resultAddr := domain.QuizResultAddress(owner, quizID)
	exists, err := l.store.Exists(ctx, resultAddr)
	if err != nil {
		return domain.Profile{}, domain.QuizResult{}, fmt.Errorf("check quiz result: %w", err)
	}
	if exists {
		return domain.Profile{}, domain.QuizResult{}, fmt.Errorf("%w: quiz %s for %s", domain.ErrAlreadyExists, quizID, owner)
	}

	now := l.now()
	earned := domain.QuizXP(score, totalQuestions)

	// The streak comparison consumes last-active as it stood before this
	// submission; only then does the timestamp advance. The check-in path
	// applies the same ordering.
	profile.Streak = domain.NextStreak(profile.Streak, now.Sub(profile.LastActive))
	profile.XP += earned
	profile.QuizzesCompleted++
	profile.Level = domain.LevelFor(profile.XP)
	profile.LastActive = now

	result := domain.QuizResult{
		Owner:          owner,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: totalQuestions,
		XPEarned:       earned,
		CompletedAt:    now,
	}
	mut := Mutation{
		Creates: []Record{QuizResultRecord(result)},
		Updates: []Record{ProfileRecord(profile)},
	}
	if err := l.store.Commit(ctx, mut); err != nil {
		return domain.Profile{}, domain.QuizResult{}, err
	}
	return profile, result, nil
}

// AwardAchievement creates an Achievement record and credits its tier bonus.
func (l *Ledger) AwardAchievement(ctx context.Context, owner, achievementID, name string, tier domain.Tier) (domain.Profile, domain.Achievement, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.Profile{}, domain.Achievement{}, err
	}
	if err := validateBoundedText("achievement id", achievementID, domain.MaxAchievementIDLen); err != nil {
		return domain.Profile{}, domain.Achievement{}, err
	}
	if err := validateBoundedText("achievement name", name, domain.MaxAchievementNameLen); err != nil {
		return domain.Profile{}, domain.Achievement{}, err
	}
	if !tier.Valid() {
		return domain.Profile{}, domain.Achievement{}, fmt.Errorf("%w: unknown tier %d", domain.ErrInvalidArgument, uint8(tier))
	}

	profile, err := l.store.LoadProfile(ctx, domain.ProfileAddress(owner))
	if err != nil {
		return domain.Profile{}, domain.Achievement{}, err
	}
	if err := checkOwnership(profile.Owner, owner); err != nil {
		return domain.Profile{}, domain.Achievement{}, err
	}

	achAddr := domain.AchievementAddress(owner, achievementID)
	exists, err := l.store.Exists(ctx, achAddr)
	if err != nil {
		return domain.Profile{}, domain.Achievement{}, fmt.Errorf("check achievement: %w", err)
	}
	if exists {
		return domain.Profile{}, domain.Achievement{}, fmt.Errorf("%w: achievement %s for %s", domain.ErrAlreadyExists, achievementID, owner)
	}

	now := l.now()
	profile.AchievementsEarned++
	profile.XP += domain.BonusFor(tier)
	profile.Level = domain.LevelFor(profile.XP)

	achievement := domain.Achievement{
		Owner:         owner,
		AchievementID: achievementID,
		Name:          name,
		Tier:          tier,
		AwardedAt:     now,
	}
	mut := Mutation{
		Creates: []Record{AchievementRecord(achievement)},
		Updates: []Record{ProfileRecord(profile)},
	}
	if err := l.store.Commit(ctx, mut); err != nil {
		return domain.Profile{}, domain.Achievement{}, err
	}
	return profile, achievement, nil
}

// StreakCheckIn extends or restarts the caller's activity streak.
func (l *Ledger) StreakCheckIn(ctx context.Context, owner string) (domain.Profile, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.Profile{}, err
	}

	profile, err := l.store.LoadProfile(ctx, domain.ProfileAddress(owner))
	if err != nil {
		return domain.Profile{}, err
	}
	if err := checkOwnership(profile.Owner, owner); err != nil {
		return domain.Profile{}, err
	}

	now := l.now()
	profile.Streak = domain.NextStreak(profile.Streak, now.Sub(profile.LastActive))
	profile.LastActive = now

	if err := l.store.Commit(ctx, Mutation{Updates: []Record{ProfileRecord(profile)}}); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// GetProfile returns the current Profile record for an owner.
func (l *Ledger) GetProfile(ctx context.Context, owner string) (domain.Profile, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.Profile{}, err
	}
	return l.reader.LoadProfile(ctx, domain.ProfileAddress(owner))
}

// GetQuizResult returns the recorded attempt for (owner, quiz id).
func (l *Ledger) GetQuizResult(ctx context.Context, owner, quizID string) (domain.QuizResult, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.QuizResult{}, err
	}
	return l.store.LoadQuizResult(ctx, domain.QuizResultAddress(owner, quizID))
}

// GetAchievement returns the earned badge for (owner, achievement id).
func (l *Ledger) GetAchievement(ctx context.Context, owner, achievementID string) (domain.Achievement, error) {
	if err := validateIdentity(owner); err != nil {
		return domain.Achievement{}, err
	}
	return l.store.LoadAchievement(ctx, domain.AchievementAddress(owner, achievementID))
}
