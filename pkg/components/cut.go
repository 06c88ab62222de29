package components

// CutComponent 切割标记
// IsCut 一旦为 true，实体不再参与碰撞检测，等待移除
type CutComponent struct {
	IsCut bool
}
