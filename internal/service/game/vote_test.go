package game

import (
	"errors"
	"testing"
)

func TestCastVote_RevoteOverwrites(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Phase = PHASE_VOTING

	addTestPlayer(ctx, "p1")
	addTestPlayer(ctx, "p2")
	addTestPlayer(ctx, "p3")

	if err := castVote(ctx, "p1", "p2"); err != nil {
		t.Fatalf("first vote should succeed, got: %v", err)
	}

	if err := castVote(ctx, "p1", "p3"); err != nil {
		t.Fatalf("revote should succeed, got: %v", err)
	}

	if got := ctx.Votes["p1"]; got != "p3" {
		t.Fatalf("revote must overwrite, want p3 got %q", got)
	}

	if len(ctx.Votes) != 1 {
		t.Fatalf("revote must not add a second entry, got %d", len(ctx.Votes))
	}
}

func TestCastVote_RejectsDeadVoterAndTarget(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Phase = PHASE_VOTING

	addTestPlayer(ctx, "p1")
	dead := addTestPlayer(ctx, "p2")
	dead.IsAlive = false

	if err := castVote(ctx, "p2", "p1"); !errors.Is(err, ErrDeadVoter) {
		t.Fatalf("dead voter should be rejected with ErrDeadVoter, got: %v", err)
	}

	if err := castVote(ctx, "p1", "p2"); !errors.Is(err, ErrDeadTarget) {
		t.Fatalf("dead target should be rejected with ErrDeadTarget, got: %v", err)
	}

	if len(ctx.Votes) != 0 {
		t.Fatalf("rejected votes must not mutate state, got %d entries", len(ctx.Votes))
	}
}

func TestCastVote_UnknownPlayers(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Phase = PHASE_VOTING

	addTestPlayer(ctx, "p1")

	if err := castVote(ctx, "ghost", "p1"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown voter, want ErrUnknownPlayer got: %v", err)
	}

	if err := castVote(ctx, "p1", "ghost"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown target, want ErrUnknownPlayer got: %v", err)
	}
}

func TestCastVote_RestrictedToCandidates(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Phase = PHASE_VOTING

	addTestPlayer(ctx, "p1")
	addTestPlayer(ctx, "p2")
	addTestPlayer(ctx, "p3")

	ctx.Candidates = []string{"p2", "p3"}

	if err := castVote(ctx, "p1", "p1"); !errors.Is(err, ErrNotCandidate) {
		t.Fatalf("non-candidate target should be rejected, got: %v", err)
	}

	if err := castVote(ctx, "p1", "p2"); err != nil {
		t.Fatalf("candidate target should be accepted, got: %v", err)
	}
}

func TestTallyVotes_PureAndRepeatable(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Phase = PHASE_VOTING

	addTestPlayer(ctx, "a")
	addTestPlayer(ctx, "b")
	addTestPlayer(ctx, "c")
	addTestPlayer(ctx, "x")
	addTestPlayer(ctx, "y")

	ctx.Votes = map[string]string{
		"a": "x",
		"b": "x",
		"c": "y",
	}

	counts := tallyVotes(ctx)

	if counts["x"] != 2 || counts["y"] != 1 {
		t.Fatalf("tally mismatch, want x=2 y=1 got %v", counts)
	}

	again := tallyVotes(ctx)

	if again["x"] != 2 || again["y"] != 1 {
		t.Fatalf("tally must be repeatable, got %v", again)
	}

	if len(ctx.Votes) != 3 {
		t.Fatalf("tally must not mutate the vote map, got %d entries", len(ctx.Votes))
	}
}

func TestTopTargets_DeterministicOrder(t *testing.T) {
	counts := map[string]int{
		"zz": 2,
		"aa": 2,
		"mm": 1,
	}

	tops := topTargets(counts)

	if len(tops) != 2 || tops[0] != "aa" || tops[1] != "zz" {
		t.Fatalf("tied targets must be sorted by ID, got %v", tops)
	}
}

func TestTopTargets_EmptyBallot(t *testing.T) {
	if tops := topTargets(map[string]int{}); tops != nil {
		t.Fatalf("empty ballot must yield no targets, got %v", tops)
	}
}

func TestEliminatePlayer_DrawsCardAndPurgesVotes(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Phase = PHASE_VOTING

	addTestPlayer(ctx, "x")
	addTestPlayer(ctx, "y")
	addTestPlayer(ctx, "z")

	ctx.Votes = map[string]string{
		"y": "x",
		"z": "x",
		"x": "y",
	}

	card, err := eliminatePlayer(ctx, "x")
	if err != nil {
		t.Fatalf("eliminate should succeed, got: %v", err)
	}

	if card == nil {
		t.Fatalf("card pool is non-empty, a card must be drawn")
	}

	if FindFinalCard(card.ID) == nil {
		t.Fatalf("drawn card %q is not from the enabled pool", card.ID)
	}

	if ctx.Players["x"].IsAlive {
		t.Fatalf("eliminated player must be dead")
	}

	// 以被淘汰者为目标的票被清除，其他票保留
	if _, ok := ctx.Votes["y"]; ok {
		t.Fatalf("vote targeting eliminated player must be purged")
	}
	if _, ok := ctx.Votes["z"]; ok {
		t.Fatalf("vote targeting eliminated player must be purged")
	}
	if got := ctx.Votes["x"]; got != "y" {
		t.Fatalf("unrelated vote must survive, got %q", got)
	}
}

func TestEliminatePlayer_EmptyCardPool(t *testing.T) {
	ctx := newTestContext(t)

	addTestPlayer(ctx, "x")

	ctx.FinalCards = nil

	card, err := eliminatePlayer(ctx, "x")
	if err != nil {
		t.Fatalf("eliminate should succeed without cards, got: %v", err)
	}

	if card != nil {
		t.Fatalf("empty pool must not produce a card, got %v", card)
	}

	if ctx.Players["x"].IsAlive {
		t.Fatalf("elimination must proceed even without a card")
	}
}

func TestEliminatePlayer_RejectsDeadTarget(t *testing.T) {
	ctx := newTestContext(t)

	dead := addTestPlayer(ctx, "x")
	dead.IsAlive = false

	if _, err := eliminatePlayer(ctx, "x"); !errors.Is(err, ErrDeadTarget) {
		t.Fatalf("eliminating a dead player, want ErrDeadTarget got: %v", err)
	}
}

func TestEliminatePlayer_StopsSpeakerClock(t *testing.T) {
	ctx := newTestContext(t)

	addTestPlayer(ctx, "x")

	ctx.StartSpeaking("x", 60)

	if _, err := eliminatePlayer(ctx, "x"); err != nil {
		t.Fatalf("eliminate should succeed, got: %v", err)
	}

	if ctx.HasActiveTimer() || ctx.CurrentSpeaker != "" {
		t.Fatalf("eliminating the current speaker must stop the clock")
	}
}
