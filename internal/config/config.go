package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// 对外公布的加入地址所用的 scheme 和主机
	// PublicHost 为空时退回到 Host（开发环境直接用监听地址）
	PublicScheme string `mapstructure:"public_scheme"`
	PublicHost   string `mapstructure:"public_host"`
	LogLevel     string `mapstructure:"log_level"`
}

// JoinHost 返回对外公布的主机地址
func (c *AppConfig) JoinHost() string {
	if c.PublicHost != "" {
		return c.PublicHost
	}

	return c.Host
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	v := viper.New()

	v.SetConfigFile("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("public_scheme", "http")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("加载配置失败: %w", err))
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("解析配置失败: %w", err))
	}

	return &config
}
