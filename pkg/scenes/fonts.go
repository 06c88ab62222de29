package scenes

import (
	"bytes"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// buttonFontSize 按钮文字字号
const buttonFontSize = 28

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	faceCache  = map[float64]*text.GoTextFace{}
)

// titleFace 返回指定字号的字体，字体源加载失败时返回 nil
// 字号取整后缓存，标题呼吸动画不会不断创建新字体
func titleFace(size float64) *text.GoTextFace {
	size = math.Round(size)
	fontOnce.Do(func() {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[Scenes] Warning: failed to load font, falling back to debug text: %v", err)
			return
		}
		fontSource = source
	})
	if fontSource == nil {
		return nil
	}

	if face, ok := faceCache[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: fontSource, Size: size}
	faceCache[size] = face
	return face
}
