package game

import (
	"time"

	"go.uber.org/zap"
)

var validCheatKinds = map[string]struct{}{
	CHEAT_BACKGROUND:  {},
	CHEAT_POPUP:       {},
	CHEAT_SCREENSHOT:  {},
	CHEAT_SPLITSCREEN: {},
}

// onCheatReport 把客户端上报的作弊信号转发给上帝视图
// 核心不做任何长期存储，也不施加任何自动惩罚，
// 后果由上帝在场外决定
//
// safe_mode 关闭时所有上报直接丢弃（空操作，不是错误），
// 这是非安全模式下的隐私约定
func onCheatReport(ctx *GameContext, req *CheatReportRequest) {
	if !ctx.Settings.SafeMode {
		zap.L().Debug(
			"safe_mode 已关闭，丢弃作弊上报",
			zap.String("session_id", ctx.SessionID),
			zap.String("player_id", req.PlayerID),
		)
		return
	}

	if _, ok := validCheatKinds[req.Kind]; !ok {
		zap.L().Warn(
			"未知的作弊信号种类，丢弃",
			zap.String("session_id", ctx.SessionID),
			zap.String("kind", req.Kind),
		)
		return
	}

	player := ctx.Players[req.PlayerID]
	if player == nil {
		return
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	zap.L().Info(
		"收到作弊信号，转发给上帝",
		zap.String("session_id", ctx.SessionID),
		zap.String("player_id", req.PlayerID),
		zap.String("kind", req.Kind),
	)

	ctx.UnicastModerator(WrapResponse(
		RESP_CHEAT_ALERT,
		CheatAlertResponse{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Kind:       req.Kind,
			Timestamp:  ts,
		},
	))
}
