// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// FruitKind 定义可发射物体的类型（水果或炸弹）
type FruitKind int

const (
	// FruitUnknown 未知类型
	FruitUnknown FruitKind = iota
	// FruitApple 苹果
	FruitApple
	// FruitOrange 橙子
	FruitOrange
	// FruitBanana 香蕉
	FruitBanana
	// FruitWatermelon 西瓜
	FruitWatermelon
	// FruitBomb 炸弹（切到扣命）
	FruitBomb
)

// AllKinds 全部可生成类型（含炸弹），按枚举顺序排列
var AllKinds = []FruitKind{FruitApple, FruitOrange, FruitBanana, FruitWatermelon, FruitBomb}

// SafeKinds 不含炸弹的水果类型
var SafeKinds = []FruitKind{FruitApple, FruitOrange, FruitBanana, FruitWatermelon}

// IsBomb 是否为炸弹
func (k FruitKind) IsBomb() bool {
	return k == FruitBomb
}

// String 返回类型的字符串表示（同时用作配置文件中的键）
func (k FruitKind) String() string {
	switch k {
	case FruitApple:
		return "apple"
	case FruitOrange:
		return "orange"
	case FruitBanana:
		return "banana"
	case FruitWatermelon:
		return "watermelon"
	case FruitBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// ParseFruitKind 将字符串解析为 FruitKind
func ParseFruitKind(s string) (FruitKind, error) {
	for _, k := range AllKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return FruitUnknown, fmt.Errorf("unknown fruit kind %q", s)
}
