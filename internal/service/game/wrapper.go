package game

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_JOIN_GAME        = "JoinGame"
	REQ_HEARTBEAT        = "Heartbeat"
	REQ_VOTE             = "Vote"
	REQ_CHEAT_REPORT     = "CheatReport"
	REQ_MODERATOR_ACTION = "ModeratorAction"
	// 以下两种是服务端内部请求，不允许来自客户端
	REQ_TICK       = "Tick"
	REQ_DISCONNECT = "Disconnect"
)

// RequestWrapper 是进入状态机的统一请求帧
// 来自客户端的帧通过 Data 携带 JSON 负载
// 服务端内部构造的帧（携带通道等无法序列化的字段）通过 Native 携带
type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Native  any             `json:"-"`
}

// IsInternalReq 判断该请求类型是否只允许由服务端内部构造
func IsInternalReq(reqType string) bool {
	return reqType == REQ_TICK || reqType == REQ_DISCONNECT
}

func unwrapInto[T any](wrapper RequestWrapper, reqType string) *T {
	if wrapper.ReqType != reqType {
		return nil
	}

	if native, ok := wrapper.Native.(*T); ok {
		return native
	}

	var req T

	if err := json.Unmarshal(wrapper.Data, &req); err != nil {
		zap.L().Error(
			"解析请求负载失败",
			zap.Error(err),
			zap.String("request_type", reqType),
		)
		return nil
	}

	return &req
}

func TryUnwrapJoinGameRequest(wrapper RequestWrapper) *JoinGameRequest {
	return unwrapInto[JoinGameRequest](wrapper, REQ_JOIN_GAME)
}

func TryUnwrapHeartbeatRequest(wrapper RequestWrapper) *HeartbeatRequest {
	return unwrapInto[HeartbeatRequest](wrapper, REQ_HEARTBEAT)
}

func TryUnwrapVoteRequest(wrapper RequestWrapper) *VoteRequest {
	return unwrapInto[VoteRequest](wrapper, REQ_VOTE)
}

func TryUnwrapCheatReportRequest(wrapper RequestWrapper) *CheatReportRequest {
	return unwrapInto[CheatReportRequest](wrapper, REQ_CHEAT_REPORT)
}

func TryUnwrapModeratorActionRequest(wrapper RequestWrapper) *ModeratorActionRequest {
	return unwrapInto[ModeratorActionRequest](wrapper, REQ_MODERATOR_ACTION)
}

func TryUnwrapTickRequest(wrapper RequestWrapper) *TickRequest {
	return unwrapInto[TickRequest](wrapper, REQ_TICK)
}

func TryUnwrapDisconnectRequest(wrapper RequestWrapper) *DisconnectRequest {
	return unwrapInto[DisconnectRequest](wrapper, REQ_DISCONNECT)
}

// 响应类型
const (
	RESP_ERROR = "Error"

	RESP_JOIN_GAME     = "JoinGame"
	RESP_SNAPSHOT      = "Snapshot"
	RESP_ROLE_ASSIGNED = "RoleAssigned"
	RESP_TIME_EXPIRED  = "TimeExpired"
	RESP_VOTE_RESULT   = "VoteResult"
	RESP_ELIMINATE     = "Eliminate"
	RESP_CHEAT_ALERT   = "CheatAlert"
	RESP_KICKED        = "Kicked"
	RESP_GAME_RESULT   = "GameResult"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data,omitempty"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   errMsg,
	}
}
