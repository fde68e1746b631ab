package game

// 胜负判定结果
const (
	VERDICT_NONE        = ""
	VERDICT_MAFIA       = "mafia"
	VERDICT_CITY        = "city"
	VERDICT_INDEPENDENT = "independent"
)

// CheckWinCondition 是对当前存活名单的纯函数
// 相同的输入总是得到相同的判定，每次淘汰之后都要调用
//
// 独立阵营只有在全场仅剩一名存活玩家且其为独立角色时
// 才判胜，各独立角色的专属胜利条件不在这里建模，
// 留给未来的规则引擎处理
//
// 黑手党追平或超过城市人数即判胜，包括双方同时归零的
// 退化局面：存活者全部没有角色时同样判黑手党胜
func CheckWinCondition(players map[string]*Player) string {
	var mafia, city, independent, alive int

	for _, p := range players {
		if !p.IsAlive {
			continue
		}

		alive++

		if p.Role == nil {
			continue
		}

		switch p.Role.Team {
		case TEAM_MAFIA:
			mafia++
		case TEAM_CITY:
			city++
		case TEAM_INDEPENDENT:
			independent++
		}
	}

	if independent > 0 {
		if alive == 1 && independent == 1 {
			return VERDICT_INDEPENDENT
		}

		return VERDICT_NONE
	}

	if mafia >= city {
		return VERDICT_MAFIA
	}

	if mafia == 0 {
		return VERDICT_CITY
	}

	return VERDICT_NONE
}
