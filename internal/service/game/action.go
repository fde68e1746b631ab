package game

import "time"

type JoinGameRequest struct {
	SessionID  string `json:"session_id"`
	HiddenID   string `json:"hidden_id"`
	JoinerName string `json:"joiner_name"`
	// 上帝设备重连时携带创建会话时返回的令牌
	ModeratorToken string `json:"moderator_token,omitempty"`

	RespCh chan ResponseWrapper `json:"-"`
}

type JoinGameResponse struct {
	SessionID   string      `json:"session_id"`
	Joiner      Player      `json:"joiner"`
	ModeratorID string      `json:"moderator_id"`
	Snapshot    GameSession `json:"snapshot"`
}

type HeartbeatRequest struct {
	PlayerID string `json:"player_id"`
}

type VoteRequest struct {
	VoterID  string `json:"voter_id"`
	TargetID string `json:"target_id"`
}

type VoteCastResponse struct {
	VoterID    string `json:"voter_id"`
	VoterName  string `json:"voter_name"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
}

// 作弊信号种类，与客户端检测服务上报的取值一致
const (
	CHEAT_BACKGROUND  = "background"
	CHEAT_POPUP       = "popup"
	CHEAT_SCREENSHOT  = "screenshot"
	CHEAT_SPLITSCREEN = "splitscreen"
)

type CheatReportRequest struct {
	PlayerID  string    `json:"player_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

type CheatAlertResponse struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Kind       string    `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`
}

// 上帝操作种类
const (
	MOD_START_GAME     = "StartGame"
	MOD_NEXT_PHASE     = "NextPhase"
	MOD_START_SPEAKING = "StartSpeaking"
	MOD_STOP_SPEAKING  = "StopSpeaking"
	MOD_BEGIN_VOTING   = "BeginVoting"
	MOD_FINISH_VOTING  = "FinishVoting"
	MOD_ELIMINATE      = "Eliminate"
	MOD_KICK_PLAYER    = "KickPlayer"
	MOD_END_GAME       = "EndGame"
)

type ModeratorActionRequest struct {
	ActorID  string `json:"actor_id"`
	Kind     string `json:"kind"`
	TargetID string `json:"target_id,omitempty"`
	// 发言时长（秒），为 0 时按当前天数取默认值
	Duration int `json:"duration,omitempty"`
}

// TickRequest 由发言计时器和存活检查定时器在服务端内部构造
type TickRequest struct{}

type DisconnectRequest struct {
	PlayerID string `json:"player_id"`
	// 用于识别旧连接的余震：通道不匹配说明玩家已经重连
	RespCh chan ResponseWrapper `json:"-"`
}

type RoleAssignedResponse struct {
	PlayerID string `json:"player_id"`
	Role     *Role  `json:"role,omitempty"`
}

type TimeExpiredResponse struct {
	PlayerID string `json:"player_id"`
}

type VoteResultResponse struct {
	Counts map[string]int `json:"counts"`
	// 得票最多的玩家集合，按 ID 升序保证确定性
	TopTargets []string `json:"top_targets"`
	Tied       bool     `json:"tied"`
}

type EliminateResponse struct {
	PlayerID   string     `json:"player_id"`
	PlayerName string     `json:"player_name"`
	Card       *FinalCard `json:"card,omitempty"`
}

type KickedResponse struct {
	PlayerID string `json:"player_id"`
}

type GameResultResponse struct {
	Winner      string            `json:"winner,omitempty"`
	PlayerRoles map[string]string `json:"player_roles"`
}
