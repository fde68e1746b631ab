package service

import (
	"errors"
	"sync"
	"time"

	"mafia-god-be/internal/service/dto"
	"mafia-god-be/internal/service/game"

	"go.uber.org/zap"
)

// SessionService 管理所有进行中的会话
// 每个会话对应一个独立的状态机协程，服务本身只做
// 创建、路由和清理，不碰游戏状态
type SessionService struct {
	state *sessionServiceState
}

type sessionServiceState struct {
	mu sync.RWMutex

	// 均为从会话 ID 到实体的映射
	machines map[string]*game.GameMachine
	doneChs  map[string]chan struct{}

	cleanUpDone chan struct{}
}

func NewSessionService() *SessionService {
	state := &sessionServiceState{
		machines:    make(map[string]*game.GameMachine),
		doneChs:     make(map[string]chan struct{}),
		cleanUpDone: make(chan struct{}),
	}

	// 启动一个 goroutine 定期清理已结束的会话
	go startCleanupLoop(state)

	return &SessionService{
		state: state,
	}
}

func startCleanupLoop(state *sessionServiceState) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-state.cleanUpDone:
			return

		case <-ticker.C:
			state.mu.Lock()

			for sessionID, machine := range state.machines {
				if !isMachineStale(machine) {
					continue
				}

				zap.S().Infof("会话 %s 已结束，开始清理", sessionID)

				close(state.doneChs[sessionID])
				delete(state.doneChs, sessionID)
				delete(state.machines, sessionID)
			}

			state.mu.Unlock()
		}
	}
}

func (ss *SessionService) Close() {
	ss.state.mu.Lock()
	defer ss.state.mu.Unlock()

	for sessionID, doneCh := range ss.state.doneChs {
		close(doneCh)
		delete(ss.state.doneChs, sessionID)
		delete(ss.state.machines, sessionID)
	}

	close(ss.state.cleanUpDone)
}

// CreateSession 校验设置、生成上帝令牌并启动会话状态机
func (ss *SessionService) CreateSession(req dto.CreateSessionRequest, joinAddress string) (dto.CreateSessionResponse, error) {
	if req.ModeratorName == "" {
		return dto.CreateSessionResponse{}, errors.New("创建者名称不能为空")
	}

	if err := ValidateJoinAddress(joinAddress); err != nil {
		return dto.CreateSessionResponse{}, err
	}

	settings := game.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}

	sessionID := game.ShortID()
	moderatorID := game.ShortID()

	ctx, err := game.NewGameContext(sessionID, moderatorID, settings)
	if err != nil {
		return dto.CreateSessionResponse{}, err
	}

	doneCh := make(chan struct{})
	machine := game.NewGameMachine(ctx, doneCh)

	ss.state.mu.Lock()
	ss.state.machines[sessionID] = machine
	ss.state.doneChs[sessionID] = doneCh
	ss.state.mu.Unlock()

	go machine.Start()

	zap.S().Infof("会话 %s 由 %s 创建", sessionID, req.ModeratorName)

	return dto.CreateSessionResponse{
		SessionID:   sessionID,
		ModeratorID: moderatorID,
		JoinAddress: joinAddress,
	}, nil
}

// JoinSession 把加入请求投递给目标会话的状态机
// 返回状态机的请求通道，供连接在整个生命周期内转发请求
func (ss *SessionService) JoinSession(req *game.JoinGameRequest, respCh chan game.ResponseWrapper) (chan game.RequestWrapper, error) {
	if req.SessionID == "" {
		return nil, errors.New("会话 ID 不能为空")
	}

	if req.ModeratorToken == "" && req.JoinerName == "" {
		return nil, errors.New("加入者名称不能为空")
	}

	ss.state.mu.RLock()
	machine, ok := ss.state.machines[req.SessionID]
	ss.state.mu.RUnlock()

	if !ok {
		return nil, errors.New("会话不存在")
	}

	req.RespCh = respCh

	joinWrapper := game.RequestWrapper{
		ReqType: game.REQ_JOIN_GAME,
		Native:  req,
	}

	reqCh := machine.GetReqCh()

	reqTimer := time.NewTimer(5 * time.Second)
	defer reqTimer.Stop()

	select {
	case reqCh <- joinWrapper:
		return reqCh, nil

	case <-reqTimer.C:
		zap.S().Warnf("会话 %s 无法及时处理加入请求，%s 发送失败", req.SessionID, req.JoinerName)
		return nil, errors.New("加入会话失败")
	}
}

// SessionExists 供 HTTP 层在生成二维码前确认会话仍然存在
func (ss *SessionService) SessionExists(sessionID string) bool {
	ss.state.mu.RLock()
	defer ss.state.mu.RUnlock()

	_, ok := ss.state.machines[sessionID]
	return ok
}
