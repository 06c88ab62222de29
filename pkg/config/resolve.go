package config

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/fruitcut/pkg/embedded"
)

// EmbeddedConfigPath 内嵌默认配置文件路径
const EmbeddedConfigPath = "data/game.yaml"

// Resolve 按优先级确定游戏配置并应用环境变量覆盖
//
// 优先级:
//  1. path 参数（命令行 --config）
//  2. 环境变量 FRUITCUT_CONFIG
//  3. 内嵌的 data/game.yaml
//  4. DefaultGameConfig()
func Resolve(path string) (*GameConfig, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	var (
		cfg *GameConfig
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadGameConfig(path)
		if err == nil {
			log.Printf("[Config] Loaded game config from %s", path)
		}
	case embedded.Exists(EmbeddedConfigPath):
		var data []byte
		data, err = embedded.ReadFile(EmbeddedConfigPath)
		if err == nil {
			cfg, err = LoadGameConfigFromBytes(data)
		}
		if err == nil {
			log.Printf("[Config] Loaded embedded game config")
		}
	default:
		cfg = DefaultGameConfig()
		log.Printf("[Config] Using built-in default game config")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve game config: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}
