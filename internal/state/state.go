package state

import (
	"mafia-god-be/internal/config"
	"mafia-god-be/internal/service"
)

type AppState struct {
	Cfg        *config.AppConfig
	SessionSvc *service.SessionService
}

func NewAppState(
	cfg *config.AppConfig,
	sessionSvc *service.SessionService,
) *AppState {
	return &AppState{
		Cfg:        cfg,
		SessionSvc: sessionSvc,
	}
}

// JoinAddress 返回对外公布的加入地址（scheme://host:port）
func (as *AppState) JoinAddress() string {
	return service.BuildJoinAddress(
		as.Cfg.PublicScheme,
		as.Cfg.JoinHost(),
		as.Cfg.Port,
	)
}
