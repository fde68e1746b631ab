package http

import (
	"fmt"

	"mafia-god-be/internal/service"
	"mafia-god-be/internal/state"

	"github.com/kataras/iris/v12"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// SessionJoinQR 把加入链接渲染成二维码 PNG
// 上帝设备把它投到屏幕上，玩家扫码后带着 session_id 接入
func SessionJoinQR(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		sessionID := ctx.Params().Get("session_id")

		if !appState.SessionSvc.SessionExists(sessionID) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": "会话不存在",
			})
			return
		}

		joinAddr := appState.JoinAddress()

		if err := service.ValidateJoinAddress(joinAddr); err != nil {
			zap.L().Error(
				"加入地址不合法，无法生成二维码",
				zap.String("join_address", joinAddr),
				zap.Error(err),
			)

			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		payload := fmt.Sprintf("%s/api/v1/ws/join?session_id=%s", joinAddr, sessionID)

		png, err := qrcode.Encode(payload, qrcode.Medium, 256)
		if err != nil {
			zap.L().Error("生成二维码失败", zap.Error(err))

			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{
				"error": "生成二维码失败",
			})
			return
		}

		ctx.ContentType("image/png")
		ctx.Write(png)
	}
}
