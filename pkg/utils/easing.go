package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 宿主用它们做消息淡出等纯显示效果，不影响游戏逻辑。

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 特点：开始慢，结束快
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// FadeOut 显示时长 age / lifetime 对应的不透明度
// 前半段保持不透明，之后按三次方缓入降到 0
func FadeOut(age, lifetime float64) float64 {
	if lifetime <= 0 {
		return 0
	}
	t := Clamp01(age / lifetime)
	if t < 0.5 {
		return 1
	}
	return Lerp(1, 0, EaseInCubic((t-0.5)*2))
}
