package http

import (
	"fmt"

	"mafia-god-be/internal/api/http/websocket"
	"mafia-god-be/internal/state"

	"github.com/kataras/iris/v12"
)

func RunServer(appState *state.AppState) {
	app := iris.Default()

	api := app.Party("/api/v1")

	api.Post("/sessions/create", CreateSession(appState))
	api.Get("/sessions/{session_id}/qr", SessionJoinQR(appState))

	api.Get("/ws/join", websocket.JoinSession(appState))

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	app.Listen(addr)
}
