package service

import "mafia-god-be/internal/service/game"

// isMachineStale 判断会话是否值得继续保留
// 已结束的会话会被清理循环回收
func isMachineStale(machine *game.GameMachine) bool {
	if machine == nil {
		return true
	}

	return machine.IsFinished()
}
