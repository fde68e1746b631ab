package service

import (
	"fmt"
	"regexp"

	"mafia-god-be/internal/service/game"
)

// 加入地址的唯一合法形态是 scheme://host:port
// 例如 http://192.168.1.100:3000，下游用它生成加入链接和二维码
var joinAddressPattern = regexp.MustCompile(`^https?://[\d.]+:\d+$`)

// ValidateJoinAddress 校验加入地址，其他任何形态都拒绝
func ValidateJoinAddress(addr string) error {
	if !joinAddressPattern.MatchString(addr) {
		return game.ErrInvalidAddress
	}

	return nil
}

// BuildJoinAddress 用配置拼出对外公布的加入地址
func BuildJoinAddress(scheme, host string, port int) string {
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}
