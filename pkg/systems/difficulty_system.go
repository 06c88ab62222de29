package systems

import (
	"math"

	"github.com/decker502/fruitcut/pkg/config"
)

// DifficultySystem 难度控制器
//
// 根据开局以来经过的时间线性提升难度：
//   - 生成间隔 BaseSpawnIntervalMs → MinSpawnIntervalMs
//   - 炸弹概率 BaseBombChance → MaxBombChance
//   - 速度倍率 1 → MaxSpeedMultiplier
//   - 每次生成数量 BaseFruitsPerSpawn → MaxFruitsPerSpawn（四舍五入，不低于基础值）
//
// 所有值只取决于 now - startTime，RampDurationMs 后保持在上限。
type DifficultySystem struct {
	cfg config.DifficultyConfig

	startTime float64
	progress  float64

	spawnInterval   float64
	bombChance      float64
	speedMultiplier float64
	fruitsPerSpawn  int
}

// NewDifficultySystem 创建难度控制器，初始为基础难度
func NewDifficultySystem(cfg config.DifficultyConfig) *DifficultySystem {
	d := &DifficultySystem{cfg: cfg}
	d.Reset(0)
	return d
}

// Reset 以 now 为起点重新开始难度曲线
func (d *DifficultySystem) Reset(now float64) {
	d.startTime = now
	d.progress = 0
	d.spawnInterval = d.cfg.BaseSpawnIntervalMs
	d.bombChance = d.cfg.BaseBombChance
	d.speedMultiplier = 1
	d.fruitsPerSpawn = d.cfg.BaseFruitsPerSpawn
}

// Update 根据当前时间重新计算难度参数
//
// 参数:
//   - now: 当前时间戳（毫秒）
func (d *DifficultySystem) Update(now float64) {
	elapsed := math.Max(0, now-d.startTime)
	progress := math.Min(1, elapsed/d.cfg.RampDurationMs)

	// 时间戳回退时不降低难度
	if progress < d.progress {
		progress = d.progress
	}
	d.progress = progress

	c := d.cfg
	d.spawnInterval = lerp(c.BaseSpawnIntervalMs, c.MinSpawnIntervalMs, progress)
	d.bombChance = lerp(c.BaseBombChance, c.MaxBombChance, progress)
	d.speedMultiplier = lerp(1, c.MaxSpeedMultiplier, progress)

	fruits := lerp(float64(c.BaseFruitsPerSpawn), float64(c.MaxFruitsPerSpawn), progress)
	d.fruitsPerSpawn = max(c.BaseFruitsPerSpawn, int(math.Floor(fruits+0.5)))
}

// Progress 当前难度进度 [0,1]
func (d *DifficultySystem) Progress() float64 { return d.progress }

// SpawnInterval 当前生成间隔（毫秒）
func (d *DifficultySystem) SpawnInterval() float64 { return d.spawnInterval }

// BombChance 当前每个生成物是炸弹的概率
func (d *DifficultySystem) BombChance() float64 { return d.bombChance }

// SpeedMultiplier 当前发射速度倍率
func (d *DifficultySystem) SpeedMultiplier() float64 { return d.speedMultiplier }

// FruitsPerSpawn 当前每次生成的数量
func (d *DifficultySystem) FruitsPerSpawn() int { return d.fruitsPerSpawn }

// lerp 线性插值，t=1 时精确返回 b
func lerp(a, b, t float64) float64 {
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}
