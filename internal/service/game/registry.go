package game

import (
	"time"

	"go.uber.org/zap"
)

// 静默超过该时长且仍被视为在线的玩家会被标记为断线
const LIVENESS_TIMEOUT = 45 * time.Second

// onPlayerJoin 处理加入请求
// 携带上帝令牌的连接作为上帝设备接入，不占用名单位
// 已知的 hidden_id 一律视为断线重连，绝不产生重复名单项
// 新玩家只允许在等待阶段加入，满员时拒绝并回复错误
func onPlayerJoin(ctx *GameContext, req *JoinGameRequest) {
	if req.ModeratorToken != "" {
		if req.ModeratorToken != ctx.ModeratorID {
			rejectJoin(req.RespCh, ErrNotAuthorized.Error())
			return
		}

		onModeratorJoin(ctx, req)
		return
	}

	// 断线重连：保留玩家 ID、角色和存活状态，只替换连接
	if existing := ctx.FindByHiddenID(req.HiddenID); existing != nil {
		zap.L().Info(
			"检测到已知 hidden_id，执行断线重连",
			zap.String("player_id", existing.ID),
			zap.String("player_name", existing.Name),
		)

		// 旧通道不在这里关闭：被顶替的读协程可能仍会向它写入
		// 错误回执，旧连接在读超时后自行退场
		existing.RespCh = req.RespCh
		existing.IsConnected = true
		existing.Name = req.JoinerName
		existing.LastActivity = time.Now()

		// 先给重连者私发完整信息（包含自己的角色）
		joiner := *existing
		joiner.RespCh = nil

		privateResp := WrapResponse(
			RESP_JOIN_GAME,
			JoinGameResponse{
				SessionID:   ctx.SessionID,
				Joiner:      joiner,
				ModeratorID: ctx.ModeratorID,
				Snapshot:    ctx.Snapshot(false),
			},
		)

		select {
		case existing.RespCh <- privateResp:
		default:
			zap.L().Warn("发送重连者私有快照失败：通道已满")
		}

		ctx.BroadcastSnapshot()

		return
	}

	// 新玩家：只允许在等待阶段加入
	if ctx.Status != STATUS_WAITING {
		rejectJoin(req.RespCh, "游戏已经开始，无法加入")
		return
	}

	if len(ctx.Players) >= ctx.Settings.MaxPlayers {
		zap.L().Info(
			"加入被拒绝：房间人数已满",
			zap.String("session_id", ctx.SessionID),
			zap.String("joiner_name", req.JoinerName),
		)

		rejectJoin(req.RespCh, ErrCapacityExceeded.Error())
		return
	}

	player := &Player{
		ID:           ShortID(),
		Name:         req.JoinerName,
		HiddenID:     req.HiddenID,
		IsAlive:      true,
		IsConnected:  true,
		LastActivity: time.Now(),
		RespCh:       req.RespCh,
	}

	ctx.Players[player.ID] = player
	ctx.Order = append(ctx.Order, player.ID)

	zap.L().Info(
		"玩家加入会话",
		zap.String("session_id", ctx.SessionID),
		zap.String("player_id", player.ID),
		zap.String("player_name", player.Name),
	)

	joiner := *player
	joiner.RespCh = nil

	ctx.UnicastResp(player.ID, WrapResponse(
		RESP_JOIN_GAME,
		JoinGameResponse{
			SessionID:   ctx.SessionID,
			Joiner:      joiner,
			ModeratorID: ctx.ModeratorID,
			Snapshot:    ctx.Snapshot(false),
		},
	))

	ctx.BroadcastSnapshot()
}

func onModeratorJoin(ctx *GameContext, req *JoinGameRequest) {
	// 旧通道保持打开，理由同玩家重连：被顶替的读协程仍可能写入
	ctx.ModeratorCh = req.RespCh

	zap.L().Info(
		"上帝设备接入会话",
		zap.String("session_id", ctx.SessionID),
	)

	ctx.UnicastModerator(WrapResponse(
		RESP_JOIN_GAME,
		JoinGameResponse{
			SessionID:   ctx.SessionID,
			Joiner:      Player{ID: ctx.ModeratorID},
			ModeratorID: ctx.ModeratorID,
			Snapshot:    ctx.Snapshot(true),
		},
	))
}

// rejectJoin 只用于握手阶段：被拒绝的连接尚未进入读循环，
// 不存在其他写入者，关闭通道是安全的
func rejectJoin(respCh chan ResponseWrapper, msg string) {
	if respCh == nil {
		return
	}

	select {
	case respCh <- WrapErrResponse(msg):
	default:
	}

	close(respCh)
}

// onPlayerDisconnect 只标记断线，永远不从名单中删除玩家
// 名单项保留到会话结束，供淘汰历史和审计使用
func onPlayerDisconnect(ctx *GameContext, req *DisconnectRequest) {
	player, exists := ctx.Players[req.PlayerID]
	if !exists {
		zap.L().Warn(
			"玩家不存在，忽略断线请求",
			zap.String("player_id", req.PlayerID),
		)
		return
	}

	// 通道不匹配说明该连接已经被重连顶替，旧连接的断开不影响玩家
	if req.RespCh != nil && player.RespCh != req.RespCh {
		zap.L().Debug(
			"检测到旧连接断开（已被顶替），忽略",
			zap.String("player_id", req.PlayerID),
		)
		return
	}

	player.IsConnected = false

	zap.L().Info(
		"玩家断线",
		zap.String("session_id", ctx.SessionID),
		zap.String("player_id", player.ID),
		zap.String("player_name", player.Name),
	)

	ctx.BroadcastSnapshot()
}

func onHeartbeat(ctx *GameContext, req *HeartbeatRequest) {
	if player := ctx.Players[req.PlayerID]; player != nil {
		player.LastActivity = time.Now()
		player.IsConnected = true
	}
}

// sweepLiveness 标记静默掉线的玩家，永远不阻塞其他操作
func sweepLiveness(ctx *GameContext, now time.Time) {
	changed := false

	for _, p := range ctx.Players {
		if p.IsConnected && now.Sub(p.LastActivity) > LIVENESS_TIMEOUT {
			zap.L().Info(
				"玩家心跳超时，标记为断线",
				zap.String("session_id", ctx.SessionID),
				zap.String("player_id", p.ID),
			)

			p.IsConnected = false
			changed = true
		}
	}

	if changed {
		ctx.BroadcastSnapshot()
	}
}

// kickPlayer 是上帝专属的强制移除，区别于断线
// 只允许在游戏开始前执行，会真正从名单中删除玩家
func kickPlayer(ctx *GameContext, targetID string) error {
	if ctx.Status != STATUS_WAITING {
		return ErrInvalidPhase
	}

	player, exists := ctx.Players[targetID]
	if !exists {
		return ErrUnknownPlayer
	}

	if player.RespCh != nil {
		select {
		case player.RespCh <- WrapResponse(RESP_KICKED, KickedResponse{PlayerID: targetID}):
		default:
		}

		// 不关闭通道：被踢连接的读协程可能仍会写入错误回执，
		// 只丢弃引用，连接由自身的断开流程收尾
		player.RespCh = nil
	}

	delete(ctx.Players, targetID)

	for i, id := range ctx.Order {
		if id == targetID {
			ctx.Order = append(ctx.Order[:i], ctx.Order[i+1:]...)
			break
		}
	}

	zap.L().Info(
		"上帝移除了玩家",
		zap.String("session_id", ctx.SessionID),
		zap.String("player_id", targetID),
	)

	ctx.BroadcastSnapshot()

	return nil
}
