package game

import "time"

// 阵营
const (
	TEAM_CITY        = "city"
	TEAM_MAFIA       = "mafia"
	TEAM_INDEPENDENT = "independent"
)

// 会话状态
const (
	STATUS_WAITING  = "Waiting"
	STATUS_SETUP    = "Setup"
	STATUS_PLAYING  = "Playing"
	STATUS_FINISHED = "Finished"
)

// 游戏阶段，仅在 Playing 状态下有意义
// Day/Night 由上帝通过 NextPhase 推进
// Voting/Defense 只能由投票流程进入和退出
const (
	PHASE_DAY     = "Day"
	PHASE_NIGHT   = "Night"
	PHASE_VOTING  = "Voting"
	PHASE_DEFENSE = "Defense"
)

// 角色定义，属于不可变的目录数据，开局前由上帝选入本局
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description []string `json:"description"`
	Team        string   `json:"team"`
	Abilities   []string `json:"abilities"`
}

// 判决卡：出局玩家随机抽取的奖励卡
type FinalCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description []string `json:"description"`
	AudioPath   string   `json:"audio_path,omitempty"`
}

type GameSettings struct {
	MinPlayers          int      `json:"min_players"`
	MaxPlayers          int      `json:"max_players"`
	SpeakingTimeIntro   int      `json:"speaking_time_intro"`
	SpeakingTimeRegular int      `json:"speaking_time_regular"`
	ChallengeTime       int      `json:"challenge_time"`
	DefenseTime         int      `json:"defense_time"`
	SafeMode            bool     `json:"safe_mode"`
	SelectedRoles       []string `json:"selected_roles"`
	SelectedFinalCards  []string `json:"selected_final_cards"`
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// 客户端生成的隐藏身份令牌，断线重连时凭它识别同一个人
	HiddenID     string    `json:"-"`
	Role         *Role     `json:"role,omitempty"`
	IsAlive      bool      `json:"is_alive"`
	IsConnected  bool      `json:"is_connected"`
	LastActivity time.Time `json:"-"`

	RespCh chan ResponseWrapper `json:"-"`
}

// GameSession 是对外广播用的会话快照
// 内部状态永远不会以可变引用的形式暴露给调用方
type GameSession struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	Day              int               `json:"day"`
	Phase            string            `json:"phase"`
	Players          []Player          `json:"players"`
	CurrentSpeaker   string            `json:"current_speaker,omitempty"`
	SpeakingTimeLeft int               `json:"speaking_time_left"`
	VotingResults    map[string]string `json:"voting_results,omitempty"`
	Candidates       []string          `json:"candidates,omitempty"`
	ModeratorID      string            `json:"moderator_id"`
	Winner           string            `json:"winner,omitempty"`
	Settings         GameSettings      `json:"settings"`
}
