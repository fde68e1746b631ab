package service

import (
	"testing"
	"time"

	"mafia-god-be/internal/service/dto"
	"mafia-god-be/internal/service/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJoinAddress = "http://192.168.1.100:3000"

func TestCreateSession(t *testing.T) {
	svc := NewSessionService()
	defer svc.Close()

	resp, err := svc.CreateSession(dto.CreateSessionRequest{ModeratorName: "God"}, testJoinAddress)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.ModeratorID)
	assert.Equal(t, testJoinAddress, resp.JoinAddress)

	assert.True(t, svc.SessionExists(resp.SessionID))
	assert.False(t, svc.SessionExists("nope"))
}

func TestCreateSession_Validation(t *testing.T) {
	svc := NewSessionService()
	defer svc.Close()

	_, err := svc.CreateSession(dto.CreateSessionRequest{}, testJoinAddress)
	assert.Error(t, err, "empty moderator name must be rejected")

	_, err = svc.CreateSession(dto.CreateSessionRequest{ModeratorName: "God"}, "example.com")
	assert.ErrorIs(t, err, game.ErrInvalidAddress)

	bad := game.DefaultSettings()
	bad.MinPlayers = 1

	_, err = svc.CreateSession(
		dto.CreateSessionRequest{ModeratorName: "God", Settings: &bad},
		testJoinAddress,
	)
	assert.ErrorIs(t, err, game.ErrInvalidSettings)
}

func TestJoinSession(t *testing.T) {
	svc := NewSessionService()
	defer svc.Close()

	created, err := svc.CreateSession(dto.CreateSessionRequest{ModeratorName: "God"}, testJoinAddress)
	require.NoError(t, err)

	respCh := make(chan game.ResponseWrapper, 64)

	reqCh, err := svc.JoinSession(&game.JoinGameRequest{
		SessionID:  created.SessionID,
		HiddenID:   "hidden-alice",
		JoinerName: "Alice",
	}, respCh)
	require.NoError(t, err)
	require.NotNil(t, reqCh)

	select {
	case resp := <-respCh:
		require.Equal(t, game.RESP_JOIN_GAME, resp.RespType)

		data, ok := resp.Data.(game.JoinGameResponse)
		require.True(t, ok)

		assert.Equal(t, created.SessionID, data.SessionID)
		assert.NotEmpty(t, data.Joiner.ID)
		assert.Equal(t, "Alice", data.Joiner.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no join ack from the session machine")
	}
}

func TestJoinSession_Validation(t *testing.T) {
	svc := NewSessionService()
	defer svc.Close()

	respCh := make(chan game.ResponseWrapper, 8)

	_, err := svc.JoinSession(&game.JoinGameRequest{JoinerName: "Alice"}, respCh)
	assert.Error(t, err, "missing session ID must be rejected")

	_, err = svc.JoinSession(&game.JoinGameRequest{SessionID: "nope", JoinerName: "Alice"}, respCh)
	assert.Error(t, err, "unknown session must be rejected")

	created, err := svc.CreateSession(dto.CreateSessionRequest{ModeratorName: "God"}, testJoinAddress)
	require.NoError(t, err)

	_, err = svc.JoinSession(&game.JoinGameRequest{SessionID: created.SessionID}, respCh)
	assert.Error(t, err, "missing joiner name must be rejected")
}
