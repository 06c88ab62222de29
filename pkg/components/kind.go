package components

import "github.com/decker502/fruitcut/pkg/types"

// KindComponent 标识实体的水果类型
// 决定得分、默认重力和尺寸范围
type KindComponent struct {
	Value types.FruitKind
}
