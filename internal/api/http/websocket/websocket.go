package websocket

import (
	"net/http"
	"time"

	"mafia-god-be/internal/service/game"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// NOTE: 局域网内使用，暂时允许所有来源
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	// 心跳间隔
	HEARTBEAT_INTERVAL = 30 * time.Second
	// 心跳超时时间
	HEARTBEAT_TIMEOUT = 45 * time.Second
)

// heartbeatHandler 在收到 pong 时刷新读超时，
// 并把心跳转发给状态机用于更新玩家的活跃时间
func heartbeatHandler(conn *websocket.Conn, reqCh chan<- game.RequestWrapper, playerID string) func(string) error {
	return func(string) error {
		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))

		if playerID == "" {
			return nil
		}

		hb := game.RequestWrapper{
			ReqType: game.REQ_HEARTBEAT,
			Native:  &game.HeartbeatRequest{PlayerID: playerID},
		}

		select {
		case reqCh <- hb:
		default:
		}

		return nil
	}
}
