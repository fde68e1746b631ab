package game

import "errors"

// 所有错误都是针对单次请求的校验失败
// 被拒绝的请求不会对会话状态产生任何修改
var (
	ErrInvalidSettings  = errors.New("游戏设置无效")
	ErrCapacityExceeded = errors.New("房间人数已满")
	ErrInvalidPhase     = errors.New("当前阶段不允许该操作")
	ErrDeadVoter        = errors.New("已出局的玩家不能投票")
	ErrDeadTarget       = errors.New("不能投给已出局的玩家")
	ErrInvalidAddress   = errors.New("加入地址格式无效")
	ErrNotAuthorized    = errors.New("只有上帝可以执行该操作")
	ErrNotCandidate     = errors.New("目标不在本轮候选名单内")
	ErrUnknownPlayer    = errors.New("玩家不存在")
)
