package main

import (
	"math"

	"github.com/decker502/fruitcut/pkg/perception"
)

const (
	segmentLength = 0.035
	handRadius    = 0.25
)

// fingerAngles 五根手指相对手腕的方向（弧度，0 指向右，负值向上）
var fingerAngles = [5]float64{-0.6, -1.25, -1.57, -1.9, -2.25}

// syntheticHand 生成一只在画面中绕圈移动的手（归一化坐标）
//
// 参数:
//   - phase: 圆周运动相位（弧度）
//   - pinch: true 时拇指尖与食指尖重合
func syntheticHand(phase float64, pinch bool) []perception.RawLandmark {
	wristX := 0.5 + handRadius*math.Cos(phase)
	wristY := 0.6 + handRadius*0.6*math.Sin(phase)

	hand := make([]perception.RawLandmark, perception.HandLandmarkCount)
	hand[0] = perception.RawLandmark{X: wristX, Y: wristY}

	for finger, angle := range fingerAngles {
		dx, dy := math.Cos(angle), math.Sin(angle)
		for joint := 0; joint < 4; joint++ {
			dist := segmentLength * float64(joint+1)
			hand[1+finger*4+joint] = perception.RawLandmark{
				X: wristX + dx*dist,
				Y: wristY + dy*dist,
			}
		}
	}

	if pinch {
		hand[perception.ThumbTip].X = hand[perception.IndexTip].X
		hand[perception.ThumbTip].Y = hand[perception.IndexTip].Y
	}
	return hand
}
