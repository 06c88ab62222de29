package utils

import "os"

// EnvMobileEmulate 设置为 1 时桌面端按移动端处理输入（本地调试触摸逻辑）
const EnvMobileEmulate = "FRUITCUT_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 移动端构建始终返回 true；桌面端可以通过 FRUITCUT_MOBILE_EMULATE=1 模拟
func IsMobile() bool {
	return mobileBuild || os.Getenv(EnvMobileEmulate) == "1"
}
