package utils

import (
	"bytes"
	"path/filepath"
	"strings"
)

// androidDataRoot Android 应用私有数据根目录
const androidDataRoot = "/data/data"

// androidSavesDir gdata 在 Android 上写入设置文件的子目录
const androidSavesDir = "saves"

// packageFromCmdline 从 /proc/self/cmdline 内容中解析应用包名
// cmdline 以 NUL 分隔参数，包名是第一个参数
func packageFromCmdline(data []byte) string {
	first, _, _ := bytes.Cut(data, []byte{0})
	return strings.TrimSpace(string(first))
}

// androidSavesPath 返回指定包名的设置目录
func androidSavesPath(pkg string) string {
	return filepath.Join(androidDataRoot, pkg, androidSavesDir)
}
