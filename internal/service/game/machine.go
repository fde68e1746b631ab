package game

import (
	"time"

	"go.uber.org/zap"
)

// 存活清扫的周期，独立于发言计时器的秒级 tick
const LIVENESS_SWEEP_INTERVAL = 15 * time.Second

// GameMachine 是会话状态机，负责管理会话状态和事件循环
// 它是 GameContext 的唯一写入者：所有玩家动作都作为请求
// 进入 reqCh，由事件循环逐个校验、应用，天然串行化，
// 不存在两个修改并发作用于同一聚合的可能
type GameMachine struct {
	ctx     *GameContext
	handler StageHandler
	// 这是所有的用户的请求汇总的通道
	reqCh chan RequestWrapper
	// 结束通道，用于通知状态机退出事件循环
	doneCh chan struct{}

	createdAt time.Time
}

func NewGameMachine(ctx *GameContext, doneCh chan struct{}) *GameMachine {
	gm := &GameMachine{
		ctx:       ctx,
		handler:   NewWaitStageHandler(),
		reqCh:     make(chan RequestWrapper, 64),
		doneCh:    doneCh,
		createdAt: time.Now(),
	}

	gm.handler.SetOnSwitch(func(nextStage string) {
		gm.ctx.GameStage = nextStage
	})

	return gm
}

func (gm *GameMachine) GetReqCh() chan RequestWrapper {
	return gm.reqCh
}

func (gm *GameMachine) SessionID() string {
	return gm.ctx.SessionID
}

func (gm *GameMachine) Start() {
	// 执行初始 handler 的 OnEnter
	gm.handler.OnEnter(gm.ctx)

	// 存活清扫定时器，会话结束时随循环一起退出
	sweepTicker := time.NewTicker(LIVENESS_SWEEP_INTERVAL)
	defer sweepTicker.Stop()

	// 进入事件循环
	for {
		var req RequestWrapper

		select {
		case req = <-gm.reqCh:
			zap.L().Debug(
				"接收到客户端请求",
				zap.String("session_id", gm.ctx.SessionID),
				zap.String("request_type", req.ReqType),
			)

		case req = <-gm.ctx.TmoCh:
			// 发言计时器的秒级 tick

		case <-sweepTicker.C:
			req = RequestWrapper{
				ReqType: REQ_TICK,
				Native:  &TickRequest{},
			}

		case <-gm.doneCh:
			zap.L().Info(
				"收到退出信号，结束会话状态机",
				zap.String("session_id", gm.ctx.SessionID),
			)

			gm.ctx.StopSpeaking()
			return
		}

		// 处理请求：校验失败只回给发起方，不影响共享状态
		if err := gm.handler.OnHandle(gm.ctx, req); err != nil {
			zap.L().Debug(
				"处理请求失败",
				zap.Error(err),
				zap.String("stage", gm.handler.Stage()),
				zap.String("request_type", req.ReqType),
			)

			gm.rejectRequest(req, err)
		}

		// 检查阶段是否发生变化
		if gm.ctx.GameStage != gm.handler.Stage() {
			gm.switchStage()

			// 如果切换到了结束阶段，广播结果后退出循环
			if gm.ctx.GameStage == STAGE_FINISHED {
				gm.handler.OnEnter(gm.ctx)
				break
			}

			gm.handler.OnEnter(gm.ctx)
		}
	}

	// 会话结束后，协程自动退出，释放资源
	zap.L().Info(
		"会话状态机已结束",
		zap.String("session_id", gm.ctx.SessionID),
	)
}

// rejectRequest 把校验失败回发给发起该请求的连接
func (gm *GameMachine) rejectRequest(req RequestWrapper, err error) {
	resp := WrapErrResponse(err.Error())

	switch req.ReqType {
	case REQ_VOTE:
		if vreq := TryUnwrapVoteRequest(req); vreq != nil {
			gm.ctx.UnicastResp(vreq.VoterID, resp)
		}

	case REQ_MODERATOR_ACTION:
		gm.ctx.UnicastModerator(resp)

	case REQ_CHEAT_REPORT:
		if creq := TryUnwrapCheatReportRequest(req); creq != nil {
			gm.ctx.UnicastResp(creq.PlayerID, resp)
		}
	}
}

func (gm *GameMachine) switchStage() {
	// 执行当前 handler 的 OnExit
	gm.handler.OnExit(gm.ctx)

	// 根据新阶段创建对应的 handler
	var newHandler StageHandler

	switch gm.ctx.GameStage {
	case STAGE_WAITING:
		newHandler = NewWaitStageHandler()
	case STAGE_DAY:
		newHandler = NewDayStageHandler()
	case STAGE_NIGHT:
		newHandler = NewNightStageHandler()
	case STAGE_VOTING:
		newHandler = NewVoteStageHandler()
	case STAGE_DEFENSE:
		newHandler = NewDefenseStageHandler()
	case STAGE_FINISHED:
		newHandler = NewFinishStageHandler()
	default:
		zap.L().Error(
			"未知的游戏阶段",
			zap.String("stage", gm.ctx.GameStage),
		)
		return
	}

	newHandler.SetOnSwitch(func(nextStage string) {
		gm.ctx.GameStage = nextStage
	})

	gm.handler = newHandler
}

func (gm *GameMachine) IsFinished() bool {
	return gm.ctx.GameStage == STAGE_FINISHED
}

func (gm *GameMachine) CreatedAt() time.Time {
	return gm.createdAt
}
