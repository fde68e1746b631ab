package game

import (
	"testing"
	"time"
)

func testSettings() GameSettings {
	settings := DefaultSettings()

	settings.MinPlayers = 3
	settings.MaxPlayers = 12
	settings.SelectedRoles = []string{"doctor", "detective", "godfather", "mafia_simple"}
	settings.SelectedFinalCards = []string{"identity_reveal", "last_words", "revenge", "silence"}

	return settings
}

func newTestContext(t *testing.T) *GameContext {
	t.Helper()

	ctx, err := NewGameContext("sess-test", "mod-test", testSettings())
	if err != nil {
		t.Fatalf("NewGameContext failed: %v", err)
	}

	return ctx
}

func addTestPlayer(ctx *GameContext, id string) *Player {
	player := &Player{
		ID:           id,
		Name:         "name-" + id,
		HiddenID:     "hidden-" + id,
		IsAlive:      true,
		IsConnected:  true,
		LastActivity: time.Now(),
	}

	ctx.Players[id] = player
	ctx.Order = append(ctx.Order, id)

	return player
}

func moderatorAction(kind, targetID string) RequestWrapper {
	return RequestWrapper{
		ReqType: REQ_MODERATOR_ACTION,
		Data: mustMarshal(ModeratorActionRequest{
			ActorID:  "mod-test",
			Kind:     kind,
			TargetID: targetID,
		}),
	}
}

func voteFrame(voterID, targetID string) RequestWrapper {
	return RequestWrapper{
		ReqType: REQ_VOTE,
		Data:    mustMarshal(VoteRequest{VoterID: voterID, TargetID: targetID}),
	}
}
