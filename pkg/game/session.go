package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/entities"
	"github.com/decker502/fruitcut/pkg/input"
	"github.com/decker502/fruitcut/pkg/systems"
	"github.com/decker502/fruitcut/pkg/types"
)

// ErrInvalidViewport 画布尺寸不合法（宽或高 <= 0），此时不会开始游戏或推进模拟
var ErrInvalidViewport = errors.New("invalid viewport")

// State 对局状态
type State int

const (
	// StateMenu 主菜单，尚未开始
	StateMenu State = iota
	// StatePlaying 游戏进行中
	StatePlaying
	// StateGameOver 生命耗尽，画面冻结
	StateGameOver
)

// String 返回状态的字符串表示
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Callbacks 对局事件回调，在 StartGame/Update 中同步调用
// 所有字段都可以为 nil
type Callbacks struct {
	OnScoreChange func(score int)
	OnLivesChange func(lives int)
	// OnGameOver 每局只触发一次
	OnGameOver func(finalScore int)
	// OnCut 切中水果或炸弹（用于播放音效）
	OnCut func(kind types.FruitKind)
}

// EntitySnapshot 渲染用的只读实体快照
type EntitySnapshot struct {
	ID     ecs.EntityID
	X, Y   float64
	Radius float64
	Kind   types.FruitKind
	IsCut  bool
}

// DifficultySnapshot 当前难度参数（HUD 调试显示用）
type DifficultySnapshot struct {
	Progress        float64
	SpawnInterval   float64
	BombChance      float64
	SpeedMultiplier float64
	FruitsPerSpawn  int
}

// Session 一局游戏的编排器
//
// 独占 World、难度控制器和计分状态，每 tick 按固定顺序执行：
// 难度 → 生成 → 移动 → 回收 → 切割检测 → 处理切割事件。
// 所有方法都在帧循环中同步调用，不是并发安全的。
type Session struct {
	cfg       *config.GameConfig
	callbacks Callbacks
	rng       *rand.Rand

	world      *ecs.World
	factory    *entities.FruitFactory
	difficulty *systems.DifficultySystem
	movement   *systems.MovementSystem
	collision  *systems.CollisionSystem
	disposal   *systems.DisposalSystem

	state            State
	score            int
	lives            int
	lastSpawnTime    float64
	gameOverReported bool

	canvasWidth  float64
	canvasHeight float64
	viewportErr  error
}

// NewSession 创建对局编排器
//
// 参数:
//   - cfg: 游戏配置，必须通过校验
//   - rng: 随机数源；为 nil 时使用当前时间作为种子
//   - callbacks: 事件回调
//
// 返回:
//   - *Session: 处于 Menu 状态的编排器
//   - error: 配置不合法时返回错误，不创建任何状态
func NewSession(cfg *config.GameConfig, rng *rand.Rand, callbacks Callbacks) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	world := ecs.NewWorld()
	s := &Session{
		cfg:          cfg,
		callbacks:    callbacks,
		rng:          rng,
		world:        world,
		factory:      entities.NewFruitFactory(cfg, world, rng),
		difficulty:   systems.NewDifficultySystem(cfg.Difficulty),
		movement:     systems.NewMovementSystem(cfg.Physics.DefaultGravity),
		collision:    systems.NewCollisionSystem(),
		disposal:     systems.NewDisposalSystem(cfg.Canvas.Height, cfg.Physics.OffscreenMargin),
		state:        StateMenu,
		lives:        cfg.Session.InitialLives,
		canvasWidth:  cfg.Canvas.Width,
		canvasHeight: cfg.Canvas.Height,
	}
	return s, nil
}

// Resize 更新画布尺寸
// 尺寸不合法时返回错误，并且在恢复合法尺寸之前 StartGame/Update 都不会执行
func (s *Session) Resize(width, height float64) error {
	if err := config.ValidateCanvas(width, height); err != nil {
		s.viewportErr = fmt.Errorf("%w: %v", ErrInvalidViewport, err)
		log.Printf("[Session] Resize rejected: %v", s.viewportErr)
		return s.viewportErr
	}

	s.viewportErr = nil
	s.canvasWidth = width
	s.canvasHeight = height
	s.factory.SetCanvasSize(width, height)
	s.disposal.SetCanvasHeight(height)
	return nil
}

// StartGame 开始（或重新开始）一局游戏
//
// 清空 World，分数归零，生命恢复为初始值，难度时钟从 now 开始，进入 Playing 状态。
//
// 参数:
//   - now: 当前时间戳（毫秒）
func (s *Session) StartGame(now float64) error {
	if s.viewportErr != nil {
		return s.viewportErr
	}

	s.world.Clear()
	s.setScore(0)
	s.setLives(s.cfg.Session.InitialLives)
	s.difficulty.Reset(now)
	s.lastSpawnTime = now
	s.gameOverReported = false
	s.state = StatePlaying

	log.Printf("[Session] Game started at %.0fms (lives=%d)", now, s.lives)
	return nil
}

// ReturnToMenu 回到主菜单状态，不清空画面
func (s *Session) ReturnToMenu() {
	s.state = StateMenu
}

// Update 推进一个 tick
//
// 非 Playing 状态下不做任何事。
//
// 参数:
//   - now: 当前时间戳（毫秒，单调递增）
//   - points: 本帧全部切割点
func (s *Session) Update(now float64, points []input.Point) error {
	if s.viewportErr != nil {
		return s.viewportErr
	}
	if s.state != StatePlaying {
		return nil
	}

	s.difficulty.Update(now)
	if now-s.lastSpawnTime >= s.difficulty.SpawnInterval() {
		s.spawn()
		s.lastSpawnTime = now
	}

	s.movement.Update(s.world)

	// 掉出画面的未切割水果扣一条命；已切割的实体和炸弹不扣命
	for _, d := range s.disposal.Update(s.world) {
		if !d.WasCut && !d.Kind.IsBomb() {
			s.loseLife(1)
		}
	}
	if s.state != StatePlaying {
		return nil
	}

	for _, ev := range s.collision.Update(s.world, points) {
		s.handleCut(ev)
		if s.state != StatePlaying {
			break
		}
	}
	return nil
}

// spawn 按当前难度生成一批实体，每个独立决定是否为炸弹
func (s *Session) spawn() {
	count := max(1, s.difficulty.FruitsPerSpawn())
	for i := 0; i < count; i++ {
		opts := entities.CreateOptions{
			SpeedMultiplier: s.difficulty.SpeedMultiplier(),
			Candidates:      types.SafeKinds,
		}
		if s.rng.Float64() < s.difficulty.BombChance() {
			opts.ForceKind = types.FruitBomb
		}
		s.world.Add(s.factory.Create(opts))
	}
}

// handleCut 处理一次切割事件
// 炸弹扣一条命；水果按类型加分。两者都立即从 World 移除
func (s *Session) handleCut(ev systems.CutEvent) {
	s.disposal.DisposeByID(s.world, ev.ID)

	if s.callbacks.OnCut != nil {
		s.callbacks.OnCut(ev.Kind)
	}

	if ev.Kind.IsBomb() {
		log.Printf("[Session] Bomb %d cut at (%.0f, %.0f)", ev.ID, ev.Point.X, ev.Point.Y)
		s.loseLife(1)
		return
	}

	s.setScore(s.score + s.cfg.Points(ev.Kind))
}

// loseLife 扣除生命，归零时结束游戏
func (s *Session) loseLife(amount int) {
	if s.state != StatePlaying || amount <= 0 {
		return
	}

	s.setLives(max(0, s.lives-amount))
	if s.lives <= 0 {
		s.endGame()
	}
}

// endGame 进入 GameOver 并报告最终分数（每局只报告一次）
func (s *Session) endGame() {
	if s.state != StatePlaying {
		return
	}
	s.state = StateGameOver

	if s.gameOverReported {
		return
	}
	s.gameOverReported = true
	log.Printf("[Session] Game over, final score %d", s.score)
	if s.callbacks.OnGameOver != nil {
		s.callbacks.OnGameOver(s.score)
	}
}

func (s *Session) setScore(score int) {
	s.score = score
	if s.callbacks.OnScoreChange != nil {
		s.callbacks.OnScoreChange(score)
	}
}

func (s *Session) setLives(lives int) {
	s.lives = lives
	if s.callbacks.OnLivesChange != nil {
		s.callbacks.OnLivesChange(lives)
	}
}

// State 当前对局状态
func (s *Session) State() State { return s.state }

// Score 当前分数
func (s *Session) Score() int { return s.score }

// Lives 剩余生命
func (s *Session) Lives() int { return s.lives }

// CanvasSize 当前画布尺寸
func (s *Session) CanvasSize() (float64, float64) { return s.canvasWidth, s.canvasHeight }

// Difficulty 当前难度参数
func (s *Session) Difficulty() DifficultySnapshot {
	return DifficultySnapshot{
		Progress:        s.difficulty.Progress(),
		SpawnInterval:   s.difficulty.SpawnInterval(),
		BombChance:      s.difficulty.BombChance(),
		SpeedMultiplier: s.difficulty.SpeedMultiplier(),
		FruitsPerSpawn:  s.difficulty.FruitsPerSpawn(),
	}
}

// Snapshot 返回当前所有可渲染实体的只读快照，顺序与创建顺序一致
func (s *Session) Snapshot() []EntitySnapshot {
	list := s.world.Query(ecs.HasPosition | ecs.HasSize)
	out := make([]EntitySnapshot, 0, len(list))
	for _, e := range list {
		snap := EntitySnapshot{
			ID:     e.ID,
			X:      e.Position.X,
			Y:      e.Position.Y,
			Radius: e.Size.Radius,
		}
		if e.Kind != nil {
			snap.Kind = e.Kind.Value
		}
		if e.Cut != nil {
			snap.IsCut = e.Cut.IsCut
		}
		out = append(out, snap)
	}
	return out
}
