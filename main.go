package main

import (
	"mafia-god-be/internal/api/http"
	"mafia-god-be/internal/config"
	"mafia-god-be/internal/logger"
	"mafia-god-be/internal/service"
	"mafia-god-be/internal/state"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	// 组装应用状态
	appState := state.NewAppState(
		cfg,
		service.NewSessionService(),
	)

	// 启动服务器
	http.RunServer(appState)
}
