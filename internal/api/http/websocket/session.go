package websocket

import (
	"encoding/json"
	"time"

	"mafia-god-be/internal/service/game"
	"mafia-god-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

func JoinSession(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		// 加入完成前还没有玩家 ID，先只刷新读超时
		conn.SetPongHandler(heartbeatHandler(conn, nil, ""))

		// 缓冲响应，保证加入确认不会被写协程抢走
		respCh := make(chan game.ResponseWrapper, 64)

		// 读取首次请求，获取必要的参数
		_, msg, err := conn.ReadMessage()
		if err != nil {
			zap.L().Error(
				"读取首次请求失败",
				zap.String("client_ip", ctx.RemoteAddr()),
				zap.Error(err),
			)
			return
		}

		var wrapper game.RequestWrapper

		if err := json.Unmarshal(msg, &wrapper); err != nil {
			zap.L().Error(
				"解析首次请求失败",
				zap.String("client_ip", ctx.RemoteAddr()),
				zap.Error(err),
			)

			return
		}

		req := game.TryUnwrapJoinGameRequest(wrapper)
		if req == nil {
			zap.L().Error(
				"首次请求不是JoinGame类型",
				zap.String("client_ip", ctx.RemoteAddr()),
				zap.Any("wrapper", wrapper),
			)

			return
		}

		// 先调用加入会话的接口，获取游戏状态机的请求通道
		reqCh, err := appState.SessionSvc.JoinSession(req, respCh)
		if err != nil {
			zap.L().Error(
				"加入会话失败",
				zap.String("client_ip", ctx.RemoteAddr()),
				zap.Error(err),
			)

			conn.WriteJSON(game.WrapErrResponse(err.Error()))

			return
		}

		// 等待并读取加入确认响应，获取玩家ID
		var playerID string
		var playerName string

		select {
		case joinResp, ok := <-respCh:
			if !ok {
				// 通道已关闭，说明状态机拒绝了加入
				zap.L().Info(
					"加入被拒绝，状态机已关闭通道",
					zap.String("client_ip", ctx.RemoteAddr()),
				)
				return
			}

			if joinResp.RespType == game.RESP_ERROR {
				zap.L().Info(
					"加入被拒绝",
					zap.String("client_ip", ctx.RemoteAddr()),
					zap.String("reason", joinResp.ErrMsg),
				)

				conn.WriteJSON(joinResp)

				return
			}

			if joinResp.RespType == game.RESP_JOIN_GAME {
				// 提取玩家ID
				if respData, ok := joinResp.Data.(game.JoinGameResponse); ok {
					playerID = respData.Joiner.ID
					playerName = respData.Joiner.Name
				}

				// 将响应放回通道供写协程发送
				select {
				case respCh <- joinResp:
				default:
					zap.L().Warn("无法回放加入响应")
				}
			}
		case <-time.After(3 * time.Second):
			zap.L().Error("等待加入响应超时", zap.String("client_ip", ctx.RemoteAddr()))
			return
		}

		if playerID == "" {
			zap.L().Error("未能获取玩家ID", zap.String("client_ip", ctx.RemoteAddr()))
			return
		}

		// 此后 pong 同时刷新读超时和状态机内的活跃时间
		conn.SetPongHandler(heartbeatHandler(conn, reqCh, playerID))

		zap.L().Info(
			"连接成功加入会话",
			zap.String("client_ip", ctx.RemoteAddr()),
			zap.String("player_id", playerID),
			zap.String("player_name", playerName),
		)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		clientIP := ctx.RemoteAddr()

		// 写入协程
		go func() {
			ticker := time.NewTicker(HEARTBEAT_INTERVAL)
			defer ticker.Stop()

			for {
				select {
				case <-writeDoneCh:
					zap.L().Info(
						"WebSocket写入协程退出",
						zap.String("client_ip", clientIP),
					)
					return

				case <-ticker.C:
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						zap.L().Error(
							"发送心跳失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))

					zap.L().Debug(
						"发送心跳",
						zap.String("client_ip", clientIP),
					)

				case resp, ok := <-respCh:
					// 检测到channel已关闭（重连顶替或会话结束时状态机关闭了通道）
					if !ok {
						zap.L().Info(
							"响应通道已关闭，退出写协程",
							zap.String("client_ip", clientIP),
						)
						return
					}

					if err := conn.WriteJSON(resp); err != nil {
						zap.L().Error(
							"发送消息失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					zap.L().Debug(
						"发送消息",
						zap.String("client_ip", clientIP),
						zap.Any("response", resp),
					)
				}
			}
		}()

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			// 解析消息
			var wrapper game.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Error(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				// 解析失败，返回错误响应
				respCh <- game.WrapErrResponse("无效的请求格式")

				continue
			}

			// 拒绝客户端伪造服务端内部请求
			if game.IsInternalReq(wrapper.ReqType) {
				zap.L().Warn(
					"客户端发送了内部请求类型，已拒绝",
					zap.String("client_ip", clientIP),
					zap.String("request_type", wrapper.ReqType),
				)

				respCh <- game.WrapErrResponse("不支持的请求类型")

				continue
			}

			// 将解析后的请求发送到游戏状态机
			select {
			case reqCh <- wrapper:
				zap.L().Debug(
					"发送请求到游戏状态机",
					zap.String("client_ip", clientIP),
					zap.Any("request_wrapper", wrapper),
				)
			default:
				zap.L().Error(
					"发送请求到游戏状态机失败：请求通道已满",
					zap.String("client_ip", clientIP),
				)

				// 返回错误响应
				respCh <- game.WrapErrResponse("会话繁忙，请稍后再试")
			}
		}

		// 读循环退出，表示客户端断开连接
		// 发送 Disconnect 请求让状态机把玩家标记为断线
		zap.L().Info(
			"客户端连接断开，发送断线请求",
			zap.String("client_ip", clientIP),
			zap.String("player_id", playerID),
		)

		disconnectWrapper := game.RequestWrapper{
			ReqType: game.REQ_DISCONNECT,
			Native: &game.DisconnectRequest{
				PlayerID: playerID,
				RespCh:   respCh,
			},
		}

		select {
		case reqCh <- disconnectWrapper:
			zap.L().Debug(
				"发送断线请求成功",
				zap.String("player_id", playerID),
			)
		default:
			zap.L().Warn(
				"发送断线请求失败：请求通道已满",
				zap.String("player_id", playerID),
			)
		}

		zap.L().Info(
			"WebSocket连接处理完成",
			zap.String("client_ip", clientIP),
			zap.String("player_id", playerID),
		)
	}
}
