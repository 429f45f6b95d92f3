package scenes

import "math"

// viewport 世界坐标到屏幕坐标的映射（等比缩放并居中）
type viewport struct {
	offsetX, offsetY float64
	scale            float64
}

// fitViewport 把 worldW x worldH 的竞技场放进屏幕区域 (x, y, w, h)
func fitViewport(worldW, worldH, x, y, w, h float64) viewport {
	if worldW <= 0 || worldH <= 0 {
		return viewport{offsetX: x, offsetY: y, scale: 1}
	}
	scale := math.Min(w/worldW, h/worldH)
	return viewport{
		offsetX: x + (w-worldW*scale)/2,
		offsetY: y + (h-worldH*scale)/2,
		scale:   scale,
	}
}

// toScreen 世界坐标转屏幕坐标
func (v viewport) toScreen(wx, wy float64) (float32, float32) {
	return float32(v.offsetX + wx*v.scale), float32(v.offsetY + wy*v.scale)
}

// length 世界长度转屏幕长度
func (v viewport) length(l float64) float32 {
	return float32(l * v.scale)
}
