package dto

import "mafia-god-be/internal/service/game"

// 一个上帝设备同一时间只拥有一个会话
// 创建会话走 HTTP，之后上帝和玩家都通过 WebSocket 接入
type CreateSessionRequest struct {
	ModeratorName string `json:"moderator_name"`
	// 为空时采用默认设置
	Settings *game.GameSettings `json:"settings,omitempty"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	// 上帝令牌，WebSocket 接入时凭它获得上帝权限
	ModeratorID string `json:"moderator_id"`
	// scheme://host:port 形态的加入地址，玩家扫码后访问
	JoinAddress string `json:"join_address"`
}
