package game

import (
	"time"

	"go.uber.org/zap"
)

// GameContext 持有一个会话的全部权威状态
// 除状态机协程外没有任何写入者，因此不需要锁
// 所有修改都必须经过状态机的事件循环，每次被接受的
// 修改之后都会对外广播一份快照
type GameContext struct {
	SessionID   string
	Status      string
	Phase       string
	Day         int
	ModeratorID string
	Settings    GameSettings

	// 名单按加入顺序保存，保证快照中的顺序稳定
	Players map[string]*Player
	Order   []string

	// 本局启用的角色和判决卡
	Roles      []Role
	FinalCards []FinalCard

	// voter -> target，复投覆盖旧票
	Votes map[string]string
	// Defense 复投时的限定候选名单，为空表示不限
	Candidates []string

	CurrentSpeaker   string
	SpeakingTimeLeft int
	speakerTimer     *SpeakingTimer

	Winner string

	// 上帝设备的响应通道，上帝不占名单位
	ModeratorCh chan ResponseWrapper

	// 计时器向状态机投递内部请求的通道
	TmoCh chan RequestWrapper

	GameStage string
}

// NewGameContext 校验设置并构建会话状态
// 违反设置约束时返回 ErrInvalidSettings
func NewGameContext(sessionID, moderatorID string, settings GameSettings) (*GameContext, error) {
	if settings.MinPlayers < 3 || settings.MaxPlayers > 12 || settings.MaxPlayers < settings.MinPlayers {
		return nil, ErrInvalidSettings
	}

	roles := make([]Role, 0, len(settings.SelectedRoles))
	for _, id := range settings.SelectedRoles {
		if role := FindRole(id); role != nil {
			roles = append(roles, *role)
		}
	}

	if len(roles) < 3 {
		return nil, ErrInvalidSettings
	}

	cards := make([]FinalCard, 0, len(settings.SelectedFinalCards))
	for _, id := range settings.SelectedFinalCards {
		if card := FindFinalCard(id); card != nil {
			cards = append(cards, *card)
		}
	}

	if len(cards) < 4 {
		return nil, ErrInvalidSettings
	}

	return &GameContext{
		SessionID:        sessionID,
		Status:           STATUS_WAITING,
		Day:              0,
		ModeratorID:      moderatorID,
		Settings:         settings,
		Players:          make(map[string]*Player),
		Order:            make([]string, 0, settings.MaxPlayers),
		Roles:            roles,
		FinalCards:       cards,
		Votes:            make(map[string]string),
		SpeakingTimeLeft: 0,
		TmoCh:            make(chan RequestWrapper, 64),
		GameStage:        STAGE_WAITING,
	}, nil
}

func (gc *GameContext) GetPlayer(playerID string) *Player {
	return gc.Players[playerID]
}

// FindByHiddenID 按隐藏身份令牌查找玩家，用于断线重连识别
func (gc *GameContext) FindByHiddenID(hiddenID string) *Player {
	if hiddenID == "" {
		return nil
	}

	for _, p := range gc.Players {
		if p.HiddenID == hiddenID {
			return p
		}
	}

	return nil
}

func (gc *GameContext) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(gc.Order))

	for _, id := range gc.Order {
		if p := gc.Players[id]; p != nil && p.IsAlive {
			alive = append(alive, p)
		}
	}

	return alive
}

// Snapshot 构建当前会话的不可变快照
// forModerator 为 false 时清除所有玩家的角色信息，
// 玩家各自的角色只在分配时单独私发
func (gc *GameContext) Snapshot(forModerator bool) GameSession {
	players := make([]Player, 0, len(gc.Order))

	for _, id := range gc.Order {
		p := gc.Players[id]
		if p == nil {
			continue
		}

		copied := *p
		copied.RespCh = nil

		if !forModerator {
			copied.Role = nil
		}

		players = append(players, copied)
	}

	var votes map[string]string
	if len(gc.Votes) > 0 {
		votes = make(map[string]string, len(gc.Votes))
		for voter, target := range gc.Votes {
			votes[voter] = target
		}
	}

	var candidates []string
	if len(gc.Candidates) > 0 {
		candidates = append([]string{}, gc.Candidates...)
	}

	return GameSession{
		ID:               gc.SessionID,
		Status:           gc.Status,
		Day:              gc.Day,
		Phase:            gc.Phase,
		Players:          players,
		CurrentSpeaker:   gc.CurrentSpeaker,
		SpeakingTimeLeft: gc.SpeakingTimeLeft,
		VotingResults:    votes,
		Candidates:       candidates,
		ModeratorID:      gc.ModeratorID,
		Winner:           gc.Winner,
		Settings:         gc.Settings,
	}
}

// BroadcastResp 向所有在线玩家和上帝发送响应
// 发送顺序与修改被接受的顺序一致，通道满视为连接失效，
// 静默标记断线而不是阻塞或崩溃
func (gc *GameContext) BroadcastResp(resp ResponseWrapper) {
	for _, id := range gc.Order {
		p := gc.Players[id]
		if p == nil || p.RespCh == nil || !p.IsConnected {
			continue
		}

		select {
		case p.RespCh <- resp:
		default:
			zap.L().Warn(
				"发送广播响应失败：玩家响应通道已满，标记为断线",
				zap.String("player_id", p.ID),
			)
			p.IsConnected = false
		}
	}

	gc.UnicastModerator(resp)
}

// BroadcastSnapshot 在每次被接受的修改之后调用
// 玩家收到公开快照，上帝收到包含角色的完整快照
func (gc *GameContext) BroadcastSnapshot() {
	public := WrapResponse(RESP_SNAPSHOT, gc.Snapshot(false))

	for _, id := range gc.Order {
		p := gc.Players[id]
		if p == nil || p.RespCh == nil || !p.IsConnected {
			continue
		}

		select {
		case p.RespCh <- public:
		default:
			zap.L().Warn(
				"发送快照失败：玩家响应通道已满，标记为断线",
				zap.String("player_id", p.ID),
			)
			p.IsConnected = false
		}
	}

	gc.UnicastModerator(WrapResponse(RESP_SNAPSHOT, gc.Snapshot(true)))
}

func (gc *GameContext) UnicastResp(playerID string, resp ResponseWrapper) {
	player, ok := gc.Players[playerID]
	if !ok || player.RespCh == nil {
		zap.L().Warn(
			"无法找到玩家进行单播响应",
			zap.String("player_id", playerID),
		)
		return
	}

	select {
	case player.RespCh <- resp:
	default:
		zap.L().Warn(
			"发送单播响应失败：玩家响应通道已满",
			zap.String("player_id", playerID),
		)
	}
}

// UnicastModerator 只发给上帝设备
func (gc *GameContext) UnicastModerator(resp ResponseWrapper) {
	if gc.ModeratorCh == nil {
		return
	}

	select {
	case gc.ModeratorCh <- resp:
	default:
		zap.L().Warn(
			"发送上帝响应失败：通道已满",
			zap.String("session_id", gc.SessionID),
		)
	}
}

// StartSpeaking 启动发言倒计时
// 同一会话最多只有一个倒计时，重新启动会隐式取消上一个
func (gc *GameContext) StartSpeaking(playerID string, durationSec int) {
	gc.StopSpeaking()

	gc.CurrentSpeaker = playerID
	gc.SpeakingTimeLeft = durationSec
	gc.speakerTimer = NewSpeakingTimer(playerID, durationSec, gc.TmoCh)
}

// StopSpeaking 取消倒计时并清空发言者
// 对已经停止的计时器重复调用是安全的空操作
func (gc *GameContext) StopSpeaking() {
	if gc.speakerTimer != nil {
		gc.speakerTimer.Stop()
		gc.speakerTimer = nil
	}

	gc.CurrentSpeaker = ""
	gc.SpeakingTimeLeft = 0
}

// TickSpeaking 由内部 Tick 请求驱动
// 剩余时间按真实流逝的墙钟时间计算，永远不为负
// 返回 true 表示本次 tick 触发了超时
func (gc *GameContext) TickSpeaking(now time.Time) bool {
	if gc.speakerTimer == nil {
		return false
	}

	remaining := gc.speakerTimer.Remaining(now)
	gc.SpeakingTimeLeft = remaining

	if remaining > 0 {
		return false
	}

	expired := gc.speakerTimer.PlayerID
	gc.StopSpeaking()

	gc.BroadcastResp(WrapResponse(
		RESP_TIME_EXPIRED,
		TimeExpiredResponse{PlayerID: expired},
	))

	return true
}

// HasActiveTimer 仅用于测试与状态机断言
func (gc *GameContext) HasActiveTimer() bool {
	return gc.speakerTimer != nil
}
