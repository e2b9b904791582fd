package domain

import "testing"

func TestDeriveAddressIsDeterministic(t *testing.T) {
	a := DeriveAddress(KindQuizResult, "owner-1", "quiz-1")
	b := DeriveAddress(KindQuizResult, "owner-1", "quiz-1")
	if a != b {
		t.Fatalf("same seeds produced different addresses: %s vs %s", a, b)
	}
}

func TestDeriveAddressSeparatesSeeds(t *testing.T) {
	addrs := map[Address]string{}
	cases := []struct {
		kind  RecordKind
		owner string
		disc  string
	}{
		{KindProfile, "owner-1", ""},
		{KindProfile, "owner-2", ""},
		{KindQuizResult, "owner-1", "quiz-1"},
		{KindQuizResult, "owner-1", "quiz-2"},
		{KindQuizResult, "owner-2", "quiz-1"},
		{KindAchievement, "owner-1", "quiz-1"},
		// Concatenation ambiguity: shifting a byte between seeds must not collide.
		{KindQuizResult, "owner-1a", "quiz"},
		{KindQuizResult, "owner-1", "aquiz"},
	}
	for _, c := range cases {
		addr := DeriveAddress(c.kind, c.owner, c.disc)
		if prev, dup := addrs[addr]; dup {
			t.Fatalf("seeds (%s,%s,%s) collided with %s", c.kind, c.owner, c.disc, prev)
		}
		addrs[addr] = string(c.kind) + "/" + c.owner + "/" + c.disc
	}
}

func TestTypedAddressHelpersMatchDerive(t *testing.T) {
	if ProfileAddress("u1") != DeriveAddress(KindProfile, "u1", "") {
		t.Fatalf("profile address helper diverged")
	}
	if QuizResultAddress("u1", "q1") != DeriveAddress(KindQuizResult, "u1", "q1") {
		t.Fatalf("quiz result address helper diverged")
	}
	if AchievementAddress("u1", "a1") != DeriveAddress(KindAchievement, "u1", "a1") {
		t.Fatalf("achievement address helper diverged")
	}
}
