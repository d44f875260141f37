package systems

import (
	"time"

	"github.com/decker502/spritepreview/pkg/components"
)

// AnimationClock 动画时钟
//
// 每次显示刷新调用一次 Tick。时钟记录上一次推进帧的时间戳，
// 播放状态下经过的时间达到 1000/FPS 毫秒时推进一帧并触发重绘。
// 这是按实际流逝时间自适应的调度，不是固定周期定时器。
type AnimationClock struct {
	state *components.DisplayState

	lastAdvance time.Duration // 上一次推进帧的时间戳
	lastTick    time.Duration // 最近一次 Tick 的时间戳
	started     bool

	// stepResetsClock 手动单步后是否重新开始计时
	// 默认 false：与参考行为一致，单步后紧接着的自动推进可能显得“加速”
	stepResetsClock bool

	redrawHooks []func()
}

// NewAnimationClock 创建动画时钟，初始播放状态取自 state.Playing
func NewAnimationClock(state *components.DisplayState, stepResetsClock bool) *AnimationClock {
	return &AnimationClock{
		state:           state,
		stepResetsClock: stepResetsClock,
	}
}

// OnRedraw 注册重绘回调（合成画面、各缩略图），按注册顺序调用
func (c *AnimationClock) OnRedraw(hook func()) {
	c.redrawHooks = append(c.redrawHooks, hook)
}

// Interval 当前帧率对应的推进间隔
// 帧率非正（绕过 SetFramesPerSecond 直接写字段）时返回 0，Tick 不会推进
func (c *AnimationClock) Interval() time.Duration {
	fps := c.state.FramesPerSecond
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// Tick 处理一次刷新通知，now 必须单调递增
// 返回本次是否推进了帧
func (c *AnimationClock) Tick(now time.Duration) bool {
	c.lastTick = now
	if !c.started {
		c.started = true
		c.lastAdvance = now
		return false
	}

	if !c.state.Playing {
		return false
	}
	interval := c.Interval()
	if interval <= 0 || now-c.lastAdvance < interval {
		return false
	}

	c.state.StepFrame()
	c.lastAdvance = now
	c.redraw()
	return true
}

// Step 手动推进一帧，与播放状态无关
func (c *AnimationClock) Step() {
	c.state.StepFrame()
	if c.stepResetsClock && c.started {
		c.lastAdvance = c.lastTick
	}
	c.redraw()
}

// Toggle 在播放和暂停之间切换，返回切换后是否播放
func (c *AnimationClock) Toggle() bool {
	c.state.Playing = !c.state.Playing
	return c.state.Playing
}

// Playing 是否处于播放状态
func (c *AnimationClock) Playing() bool {
	return c.state.Playing
}

// SetFramesPerSecond 修改帧率，从下一次 Tick 的阈值判断开始生效
func (c *AnimationClock) SetFramesPerSecond(fps float64) bool {
	return c.state.SetFramesPerSecond(fps)
}

// Redraw 立即触发一次重绘（用于用户输入后的同步刷新）
func (c *AnimationClock) Redraw() {
	c.redraw()
}

func (c *AnimationClock) redraw() {
	for _, hook := range c.redrawHooks {
		hook()
	}
}
