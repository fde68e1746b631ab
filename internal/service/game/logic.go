package game

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// 会话的事件循环按阶段分发，共 6 个阶段：
// 1. 等待阶段（Waiting）：玩家扫码加入，上帝决定开局
// 2. 白天阶段（Day）：轮流发言，上帝控制发言计时
// 3. 黑夜阶段（Night）：夜间行动，上帝手动结算淘汰
// 4. 投票阶段（Voting）：存活玩家投票，复投覆盖旧票
// 5. 辩护阶段（Defense）：平票者辩护，随后限定名单复投
// 6. 结束阶段（Finished）：公布胜负，协程退出
//
// Waiting/Finished 对应会话状态，Day/Night/Voting/Defense
// 对应 Playing 状态下的阶段
const (
	STAGE_WAITING  = STATUS_WAITING
	STAGE_DAY      = PHASE_DAY
	STAGE_NIGHT    = PHASE_NIGHT
	STAGE_VOTING   = PHASE_VOTING
	STAGE_DEFENSE  = PHASE_DEFENSE
	STAGE_FINISHED = STATUS_FINISHED
)

type StageHandler interface {
	Stage() string

	OnEnter(ctx *GameContext)
	OnHandle(ctx *GameContext, req RequestWrapper) error
	OnExit(ctx *GameContext)

	SetOnSwitch(func(nextStage string))
}

// handleCommon 处理所有阶段都接受的请求：
// 加入/重连、心跳、断线、作弊上报和内部 Tick
// 返回 true 表示请求已被消费
func handleCommon(ctx *GameContext, req RequestWrapper, onSwitch func(string)) bool {
	if jreq := TryUnwrapJoinGameRequest(req); jreq != nil {
		onPlayerJoin(ctx, jreq)
		return true
	}

	if hreq := TryUnwrapHeartbeatRequest(req); hreq != nil {
		onHeartbeat(ctx, hreq)
		return true
	}

	if dreq := TryUnwrapDisconnectRequest(req); dreq != nil {
		// 上帝断开即终止会话，取消所有计时器
		if dreq.PlayerID == ctx.ModeratorID {
			// 通道不匹配说明上帝已经重连，旧连接的断开不影响会话
			if dreq.RespCh != nil && dreq.RespCh != ctx.ModeratorCh {
				zap.L().Debug(
					"检测到上帝旧连接断开（已被顶替），忽略",
					zap.String("session_id", ctx.SessionID),
				)
				return true
			}

			zap.L().Info(
				"上帝设备断开，终止会话",
				zap.String("session_id", ctx.SessionID),
			)

			ctx.ModeratorCh = nil

			if ctx.GameStage != STAGE_FINISHED {
				onSwitch(STAGE_FINISHED)
			}

			return true
		}

		onPlayerDisconnect(ctx, dreq)
		return true
	}

	if creq := TryUnwrapCheatReportRequest(req); creq != nil {
		onCheatReport(ctx, creq)
		return true
	}

	if TryUnwrapTickRequest(req) != nil {
		onTick(ctx)
		return true
	}

	return false
}

// onTick 结算发言倒计时并清扫心跳超时的玩家
// 会话结束后收到的残留 tick 是安全的空操作
func onTick(ctx *GameContext) {
	if ctx.Status == STATUS_FINISHED {
		return
	}

	now := time.Now()

	sweepLiveness(ctx, now)

	if ctx.HasActiveTimer() {
		// 到点时 TickSpeaking 已经广播了 TimeExpired，
		// 阶段推进仍由上帝决定；未到点则按秒广播剩余时间
		ctx.TickSpeaking(now)
		ctx.BroadcastSnapshot()
	}
}

// unwrapModAction 解出上帝操作并校验操作者身份
func unwrapModAction(ctx *GameContext, req RequestWrapper) (*ModeratorActionRequest, error) {
	mreq := TryUnwrapModeratorActionRequest(req)
	if mreq == nil {
		return nil, nil
	}

	if mreq.ActorID != ctx.ModeratorID {
		return nil, ErrNotAuthorized
	}

	return mreq, nil
}

// applyRoleAssignment 把本局角色分配给打乱后的名单
// 要求会话处于 Setup 状态，采用全范围 Fisher–Yates 均匀打乱，
// 角色数少于玩家数时多出的玩家保持无角色，这是合法状态
func applyRoleAssignment(ctx *GameContext) error {
	if ctx.Status != STATUS_SETUP {
		return ErrInvalidPhase
	}

	shuffled := append([]string{}, ctx.Order...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := min(len(shuffled), len(ctx.Roles))

	for i := 0; i < n; i++ {
		role := ctx.Roles[i]
		ctx.Players[shuffled[i]].Role = &role
	}

	ctx.Status = STATUS_PLAYING
	ctx.Day = 0
	ctx.Phase = PHASE_DAY
	ctx.SpeakingTimeLeft = ctx.Settings.SpeakingTimeIntro

	// 角色只在这里私发一次，公开快照永远不带角色
	for i := 0; i < n; i++ {
		ctx.UnicastResp(shuffled[i], WrapResponse(
			RESP_ROLE_ASSIGNED,
			RoleAssignedResponse{
				PlayerID: shuffled[i],
				Role:     ctx.Players[shuffled[i]].Role,
			},
		))
	}

	zap.L().Info(
		"角色分配完成",
		zap.String("session_id", ctx.SessionID),
		zap.Int("assigned", n),
		zap.Int("roster", len(shuffled)),
	)

	return nil
}

// doEliminate 淘汰、发判决卡、清票、判定胜负
func doEliminate(ctx *GameContext, targetID string, onSwitch func(string)) error {
	player := ctx.Players[targetID]
	if player == nil {
		return ErrUnknownPlayer
	}

	name := player.Name

	card, err := eliminatePlayer(ctx, targetID)
	if err != nil {
		return err
	}

	ctx.BroadcastResp(WrapResponse(
		RESP_ELIMINATE,
		EliminateResponse{
			PlayerID:   targetID,
			PlayerName: name,
			Card:       card,
		},
	))

	if verdict := CheckWinCondition(ctx.Players); verdict != VERDICT_NONE {
		ctx.Winner = verdict
		onSwitch(STAGE_FINISHED)
		return nil
	}

	ctx.BroadcastSnapshot()

	return nil
}

// 等待阶段：整个会话最初始的阶段
type waitStageHandler struct {
	onSwitch func(string)
}

func NewWaitStageHandler() *waitStageHandler {
	return &waitStageHandler{}
}

func (wsh *waitStageHandler) Stage() string {
	return STAGE_WAITING
}

func (wsh *waitStageHandler) OnEnter(ctx *GameContext) {
	ctx.Status = STATUS_WAITING
}

func (wsh *waitStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handleCommon(ctx, req, wsh.onSwitch) {
		return nil
	}

	if vreq := TryUnwrapVoteRequest(req); vreq != nil {
		return ErrInvalidPhase
	}

	mreq, err := unwrapModAction(ctx, req)
	if err != nil {
		return err
	}

	if mreq != nil {
		switch mreq.Kind {
		case MOD_START_GAME:
			if len(ctx.Players) < ctx.Settings.MinPlayers {
				return errors.New("无法开始游戏：玩家人数不足")
			}

			ctx.Status = STATUS_SETUP

			if err := applyRoleAssignment(ctx); err != nil {
				ctx.Status = STATUS_WAITING
				return err
			}

			wsh.onSwitch(STAGE_DAY)
			return nil

		case MOD_KICK_PLAYER:
			return kickPlayer(ctx, mreq.TargetID)

		case MOD_END_GAME:
			wsh.onSwitch(STAGE_FINISHED)
			return nil

		default:
			return ErrInvalidPhase
		}
	}

	return errors.New("等待阶段不支持该请求类型")
}

func (wsh *waitStageHandler) OnExit(ctx *GameContext) {
}

func (wsh *waitStageHandler) SetOnSwitch(onSwitch func(string)) {
	wsh.onSwitch = onSwitch
}

// 白天阶段：轮流发言，上帝控制计时和推进
type dayStageHandler struct {
	onSwitch func(string)
}

func NewDayStageHandler() *dayStageHandler {
	return &dayStageHandler{}
}

func (dsh *dayStageHandler) Stage() string {
	return STAGE_DAY
}

func (dsh *dayStageHandler) OnEnter(ctx *GameContext) {
	ctx.Phase = PHASE_DAY
	ctx.BroadcastSnapshot()
}

func (dsh *dayStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handleCommon(ctx, req, dsh.onSwitch) {
		return nil
	}

	// 白天不是投票阶段，投票一律拒绝且不改动任何状态
	if vreq := TryUnwrapVoteRequest(req); vreq != nil {
		return ErrInvalidPhase
	}

	mreq, err := unwrapModAction(ctx, req)
	if err != nil {
		return err
	}

	if mreq != nil {
		switch mreq.Kind {
		case MOD_NEXT_PHASE:
			dsh.onSwitch(STAGE_NIGHT)
			return nil

		case MOD_START_SPEAKING:
			target := ctx.Players[mreq.TargetID]
			if target == nil {
				return ErrUnknownPlayer
			}
			if !target.IsAlive {
				return ErrDeadTarget
			}

			duration := mreq.Duration
			if duration <= 0 {
				if ctx.Day == 0 {
					duration = ctx.Settings.SpeakingTimeIntro
				} else {
					duration = ctx.Settings.SpeakingTimeRegular
				}
			}

			ctx.StartSpeaking(mreq.TargetID, duration)
			ctx.BroadcastSnapshot()
			return nil

		case MOD_STOP_SPEAKING:
			ctx.StopSpeaking()
			ctx.BroadcastSnapshot()
			return nil

		case MOD_BEGIN_VOTING:
			// 从白天进入的是全员投票，清除残留候选名单
			ctx.Candidates = nil
			dsh.onSwitch(STAGE_VOTING)
			return nil

		case MOD_ELIMINATE:
			return doEliminate(ctx, mreq.TargetID, dsh.onSwitch)

		case MOD_END_GAME:
			dsh.onSwitch(STAGE_FINISHED)
			return nil

		default:
			return ErrInvalidPhase
		}
	}

	return errors.New("白天阶段不支持该请求类型")
}

func (dsh *dayStageHandler) OnExit(ctx *GameContext) {
	// 离开白天必须停表，避免残留回调污染后续阶段
	ctx.StopSpeaking()
}

func (dsh *dayStageHandler) SetOnSwitch(onSwitch func(string)) {
	dsh.onSwitch = onSwitch
}

// 黑夜阶段：夜间行动的结算由上帝手动执行
type nightStageHandler struct {
	onSwitch func(string)
}

func NewNightStageHandler() *nightStageHandler {
	return &nightStageHandler{}
}

func (nsh *nightStageHandler) Stage() string {
	return STAGE_NIGHT
}

func (nsh *nightStageHandler) OnEnter(ctx *GameContext) {
	ctx.Phase = PHASE_NIGHT
	ctx.BroadcastSnapshot()
}

func (nsh *nightStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handleCommon(ctx, req, nsh.onSwitch) {
		return nil
	}

	if vreq := TryUnwrapVoteRequest(req); vreq != nil {
		return ErrInvalidPhase
	}

	mreq, err := unwrapModAction(ctx, req)
	if err != nil {
		return err
	}

	if mreq != nil {
		switch mreq.Kind {
		case MOD_NEXT_PHASE:
			// 天亮进入新的一天，发言时长恢复为常规值
			// 开场的自我介绍时长只出现在第 0 天，天亮后不再回到
			ctx.Day++
			ctx.SpeakingTimeLeft = ctx.Settings.SpeakingTimeRegular

			nsh.onSwitch(STAGE_DAY)
			return nil

		case MOD_ELIMINATE:
			return doEliminate(ctx, mreq.TargetID, nsh.onSwitch)

		case MOD_END_GAME:
			nsh.onSwitch(STAGE_FINISHED)
			return nil

		default:
			return ErrInvalidPhase
		}
	}

	return errors.New("黑夜阶段不支持该请求类型")
}

func (nsh *nightStageHandler) OnExit(ctx *GameContext) {
}

func (nsh *nightStageHandler) SetOnSwitch(onSwitch func(string)) {
	nsh.onSwitch = onSwitch
}

// 投票阶段：只有该阶段允许写入投票结果
type voteStageHandler struct {
	onSwitch func(string)
}

func NewVoteStageHandler() *voteStageHandler {
	return &voteStageHandler{}
}

func (vsh *voteStageHandler) Stage() string {
	return STAGE_VOTING
}

func (vsh *voteStageHandler) OnEnter(ctx *GameContext) {
	ctx.Phase = PHASE_VOTING
	ctx.Votes = make(map[string]string)
	ctx.BroadcastSnapshot()
}

func (vsh *voteStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handleCommon(ctx, req, vsh.onSwitch) {
		return nil
	}

	if vreq := TryUnwrapVoteRequest(req); vreq != nil {
		if err := castVote(ctx, vreq.VoterID, vreq.TargetID); err != nil {
			return err
		}

		voter := ctx.Players[vreq.VoterID]
		target := ctx.Players[vreq.TargetID]

		ctx.BroadcastResp(WrapResponse(
			RESP_VOTE_RESULT,
			VoteCastResponse{
				VoterID:    voter.ID,
				VoterName:  voter.Name,
				TargetID:   target.ID,
				TargetName: target.Name,
			},
		))

		ctx.BroadcastSnapshot()

		return nil
	}

	mreq, err := unwrapModAction(ctx, req)
	if err != nil {
		return err
	}

	if mreq != nil {
		switch mreq.Kind {
		case MOD_FINISH_VOTING:
			vsh.finishVoting(ctx)
			return nil

		case MOD_END_GAME:
			vsh.onSwitch(STAGE_FINISHED)
			return nil

		default:
			// 投票期间不允许淘汰和推进，防止票面被半路作废
			return ErrInvalidPhase
		}
	}

	return errors.New("投票阶段不支持该请求类型")
}

// finishVoting 结算票面
// 唯一多数：公布结果，回到白天，由上帝执行淘汰
// 平票：带着并列者进入辩护阶段，辩护后限定名单复投
// 复投再次平票：无人出局，回到白天
func (vsh *voteStageHandler) finishVoting(ctx *GameContext) {
	counts := tallyVotes(ctx)
	tops := topTargets(counts)
	revote := len(ctx.Candidates) > 0

	switch {
	case len(tops) <= 1:
		ctx.BroadcastResp(WrapResponse(
			RESP_VOTE_RESULT,
			VoteResultResponse{
				Counts:     counts,
				TopTargets: tops,
				Tied:       false,
			},
		))

		ctx.Candidates = nil
		vsh.onSwitch(STAGE_DAY)

	case revote:
		// 复投仍然平票，本轮无人出局
		zap.L().Info(
			"复投再次平票，无人出局",
			zap.String("session_id", ctx.SessionID),
		)

		ctx.BroadcastResp(WrapResponse(
			RESP_VOTE_RESULT,
			VoteResultResponse{
				Counts:     counts,
				TopTargets: tops,
				Tied:       true,
			},
		))

		ctx.Candidates = nil
		vsh.onSwitch(STAGE_DAY)

	default:
		zap.L().Info(
			"投票平局，进入辩护阶段",
			zap.String("session_id", ctx.SessionID),
			zap.Strings("candidates", tops),
		)

		ctx.BroadcastResp(WrapResponse(
			RESP_VOTE_RESULT,
			VoteResultResponse{
				Counts:     counts,
				TopTargets: tops,
				Tied:       true,
			},
		))

		ctx.Candidates = tops
		vsh.onSwitch(STAGE_DEFENSE)
	}
}

func (vsh *voteStageHandler) OnExit(ctx *GameContext) {
}

func (vsh *voteStageHandler) SetOnSwitch(onSwitch func(string)) {
	vsh.onSwitch = onSwitch
}

// 辩护阶段：平票者逐个辩护，随后限定名单复投
type defenseStageHandler struct {
	onSwitch func(string)
}

func NewDefenseStageHandler() *defenseStageHandler {
	return &defenseStageHandler{}
}

func (dsh *defenseStageHandler) Stage() string {
	return STAGE_DEFENSE
}

func (dsh *defenseStageHandler) OnEnter(ctx *GameContext) {
	ctx.Phase = PHASE_DEFENSE
	ctx.BroadcastSnapshot()
}

func (dsh *defenseStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handleCommon(ctx, req, dsh.onSwitch) {
		return nil
	}

	if vreq := TryUnwrapVoteRequest(req); vreq != nil {
		return ErrInvalidPhase
	}

	mreq, err := unwrapModAction(ctx, req)
	if err != nil {
		return err
	}

	if mreq != nil {
		switch mreq.Kind {
		case MOD_START_SPEAKING:
			// 辩护发言只给并列候选人
			found := false
			for _, id := range ctx.Candidates {
				if id == mreq.TargetID {
					found = true
					break
				}
			}

			if !found {
				return ErrNotCandidate
			}

			duration := mreq.Duration
			if duration <= 0 {
				duration = ctx.Settings.DefenseTime
			}

			ctx.StartSpeaking(mreq.TargetID, duration)
			ctx.BroadcastSnapshot()
			return nil

		case MOD_STOP_SPEAKING:
			ctx.StopSpeaking()
			ctx.BroadcastSnapshot()
			return nil

		case MOD_BEGIN_VOTING:
			// 复投保留候选名单，castVote 会据此限制目标
			dsh.onSwitch(STAGE_VOTING)
			return nil

		case MOD_ELIMINATE:
			return doEliminate(ctx, mreq.TargetID, dsh.onSwitch)

		case MOD_END_GAME:
			dsh.onSwitch(STAGE_FINISHED)
			return nil

		default:
			return ErrInvalidPhase
		}
	}

	return errors.New("辩护阶段不支持该请求类型")
}

func (dsh *defenseStageHandler) OnExit(ctx *GameContext) {
	ctx.StopSpeaking()
}

func (dsh *defenseStageHandler) SetOnSwitch(onSwitch func(string)) {
	dsh.onSwitch = onSwitch
}

// 结束阶段
type finishStageHandler struct {
	onSwitch func(string)
}

func NewFinishStageHandler() *finishStageHandler {
	return &finishStageHandler{}
}

func (fsh *finishStageHandler) Stage() string {
	return STAGE_FINISHED
}

func (fsh *finishStageHandler) OnEnter(ctx *GameContext) {
	ctx.Status = STATUS_FINISHED
	ctx.StopSpeaking()

	// 终局公布所有玩家的角色
	playerRoles := make(map[string]string, len(ctx.Players))
	for _, p := range ctx.Players {
		if p.Role != nil {
			playerRoles[p.Name] = p.Role.Name
		}
	}

	ctx.BroadcastResp(WrapResponse(
		RESP_GAME_RESULT,
		GameResultResponse{
			Winner:      ctx.Winner,
			PlayerRoles: playerRoles,
		},
	))

	ctx.BroadcastSnapshot()
}

func (fsh *finishStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	// 状态机在进入结束阶段后立即退出事件循环，不会再分发请求
	return errors.New("游戏已结束")
}

func (fsh *finishStageHandler) OnExit(ctx *GameContext) {
	// 强制确定为 FINISHED 阶段，防止出现异常状态
	ctx.GameStage = STAGE_FINISHED
}

func (fsh *finishStageHandler) SetOnSwitch(onSwitch func(string)) {
	fsh.onSwitch = onSwitch
}
