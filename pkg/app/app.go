// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/game"
	"github.com/decker502/fruitcut/pkg/perception"
	"github.com/decker502/fruitcut/pkg/scenes"
	"github.com/decker502/fruitcut/pkg/types"
	"github.com/decker502/fruitcut/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "fruitcut"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Game 游戏配置，为 nil 时使用默认配置
	Game *config.GameConfig
	// DisableAudio 不创建音频上下文（无音频设备的环境）
	DisableAudio bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.GameConfig
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	perception   *perception.Server
	verbose      bool

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
//
// 依次创建设置管理器、音效、对局会话、关键点服务和场景，启动时进入主菜单。
// 关键点服务监听失败不会阻止游戏启动，只是没有手势输入。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg := cfg.Game
	if gameCfg == nil {
		gameCfg = config.DefaultGameConfig()
	}

	settingsManager := openSettings()

	var audioManager *game.AudioManager
	if cfg.DisableAudio {
		audioManager = game.NewAudioManager(nil, settingsManager)
	} else {
		audioManager = game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settingsManager)
	}
	log.Printf("[App] AudioManager initialized")

	session, err := game.NewSession(gameCfg, nil, game.Callbacks{
		OnScoreChange: func(score int) {
			log.Printf("[App] Score: %d", score)
		},
		OnLivesChange: func(lives int) {
			log.Printf("[App] Lives: %d", lives)
		},
		OnGameOver: func(finalScore int) {
			audioManager.PlaySound(game.SoundOver)
		},
		OnCut: func(kind types.FruitKind) {
			audioManager.PlayCut(kind)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("对局初始化失败: %w", err)
	}

	a := &App{
		cfg:          gameCfg,
		sceneManager: game.NewSceneManager(),
		settings:     settingsManager,
		verbose:      cfg.Verbose,
	}

	var hands scenes.LandmarkSource
	if gameCfg.Perception.Enabled {
		server := perception.NewServer(gameCfg.Perception, gameCfg.Canvas.Width, gameCfg.Canvas.Height)
		if err := server.Start(); err != nil {
			log.Printf("[App] Warning: perception server disabled: %v", err)
		} else {
			a.perception = server
			hands = server
		}
	}

	env := scenes.NewEnv(gameCfg, session, settingsManager, audioManager, a.sceneManager, hands)
	a.sceneManager.SetSceneFactory(scenes.NewSceneFactory(env))
	a.sceneManager.Load(game.SceneMenu)

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// openSettings 打开 gdata 存储并加载设置；存储不可用时退化为仅内存设置
func openSettings() *game.SettingsManager {
	var gdataManager *gdata.Manager
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	} else if dir := utils.GetStoragePath(); dir != "" {
		log.Printf("[App] Settings dir: %s", dir)
	}
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
	} else {
		gdataManager = m
	}

	sm, _ := game.NewSettingsManager(gdataManager)
	return sm
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(int(a.cfg.Canvas.Width), int(a.cfg.Canvas.Height))
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// toggleFullscreen F11 切换全屏并记住选择
func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时 letterbox 区域填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 画布跟随窗口尺寸，尺寸变化时通知当前场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return int(a.cfg.Canvas.Width), int(a.cfg.Canvas.Height)
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 停止关键点服务并保存设置
func (a *App) Close() {
	if a.perception != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.perception.Shutdown(ctx); err != nil {
			log.Printf("[App] Warning: perception shutdown: %v", err)
		}
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
