package game

import (
	"math/rand"
	"slices"

	"go.uber.org/zap"
)

// castVote 记录一票，校验全部通过之前不修改任何状态
// 复投覆盖旧票，以最后一票为准
func castVote(ctx *GameContext, voterID, targetID string) error {
	if ctx.Phase != PHASE_VOTING {
		return ErrInvalidPhase
	}

	voter, ok := ctx.Players[voterID]
	if !ok {
		return ErrUnknownPlayer
	}

	if !voter.IsAlive {
		return ErrDeadVoter
	}

	target, ok := ctx.Players[targetID]
	if !ok {
		return ErrUnknownPlayer
	}

	if !target.IsAlive {
		return ErrDeadTarget
	}

	// Defense 后的复投只允许投给被并列的候选人
	if len(ctx.Candidates) > 0 && !slices.Contains(ctx.Candidates, targetID) {
		return ErrNotCandidate
	}

	ctx.Votes[voterID] = targetID

	zap.L().Debug(
		"记录投票",
		zap.String("session_id", ctx.SessionID),
		zap.String("voter_id", voterID),
		zap.String("target_id", targetID),
	)

	return nil
}

// tallyVotes 纯聚合，不修改状态，可重复调用
func tallyVotes(ctx *GameContext) map[string]int {
	counts := make(map[string]int)

	for _, targetID := range ctx.Votes {
		counts[targetID]++
	}

	return counts
}

// topTargets 返回得票最多的玩家集合，按 ID 升序保证确定性
func topTargets(counts map[string]int) []string {
	maxVotes := 0
	for _, count := range counts {
		if count > maxVotes {
			maxVotes = count
		}
	}

	if maxVotes == 0 {
		return nil
	}

	tops := make([]string, 0, 1)
	for targetID, count := range counts {
		if count == maxVotes {
			tops = append(tops, targetID)
		}
	}

	slices.Sort(tops)

	return tops
}

// eliminatePlayer 淘汰玩家并随机发一张判决卡
// 每次抽取都是对整个启用卡池的独立均匀抽取，卡不会被抽走
// 卡池为空时不发卡但仍然淘汰
// 同时清除所有以被淘汰者为目标的未结算投票
func eliminatePlayer(ctx *GameContext, playerID string) (*FinalCard, error) {
	player, ok := ctx.Players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if !player.IsAlive {
		return nil, ErrDeadTarget
	}

	player.IsAlive = false

	for voterID, targetID := range ctx.Votes {
		if targetID == playerID {
			delete(ctx.Votes, voterID)
		}
	}

	// 被淘汰者正在发言时立即停表
	if ctx.CurrentSpeaker == playerID {
		ctx.StopSpeaking()
	}

	var card *FinalCard
	if len(ctx.FinalCards) > 0 {
		drawn := ctx.FinalCards[rand.Intn(len(ctx.FinalCards))]
		card = &drawn
	}

	zap.L().Info(
		"玩家被淘汰",
		zap.String("session_id", ctx.SessionID),
		zap.String("player_id", playerID),
		zap.String("player_name", player.Name),
	)

	return card, nil
}
