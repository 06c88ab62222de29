package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvConfigPath     = "FRUITCUT_CONFIG"
	EnvPerceptionAddr = "FRUITCUT_PERCEPTION_ADDR"
	EnvInitialLives   = "FRUITCUT_INITIAL_LIVES"
)

// LoadEnvFile 加载 .env 文件到进程环境变量
// 文件不存在不是错误（大多数情况下不会有 .env）
func LoadEnvFile(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	log.Printf("[Config] Loaded environment variables from .env")
	return nil
}

// ApplyEnvOverrides 用环境变量覆盖配置
//
// 支持:
//   - FRUITCUT_PERCEPTION_ADDR: 设置后同时启用手部识别接入
//   - FRUITCUT_INITIAL_LIVES: 初始生命数
//
// 覆盖后重新校验配置
func (c *GameConfig) ApplyEnvOverrides() error {
	if addr := os.Getenv(EnvPerceptionAddr); addr != "" {
		c.Perception.ListenAddr = addr
		c.Perception.Enabled = true
		log.Printf("[Config] %s=%s (perception enabled)", EnvPerceptionAddr, addr)
	}

	if v := os.Getenv(EnvInitialLives); v != "" {
		lives, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, EnvInitialLives, v)
		}
		c.Session.InitialLives = lives
		log.Printf("[Config] %s=%d", EnvInitialLives, lives)
	}

	return c.Validate()
}
