// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// Action 定义角色的动作类型，每个动作对应一张独立的精灵图
type Action int

const (
	// ActionWalk 行走
	ActionWalk Action = iota
	// ActionRun 奔跑
	ActionRun
	// ActionBike 骑车
	ActionBike
	// ActionSurf 冲浪
	ActionSurf
	// ActionDive 潜水
	ActionDive
	// ActionFish 钓鱼
	ActionFish
)

// AllActions 按界面顺序列出所有动作
var AllActions = []Action{ActionWalk, ActionRun, ActionBike, ActionSurf, ActionDive, ActionFish}

var actionNames = map[Action]string{
	ActionWalk: "walk",
	ActionRun:  "run",
	ActionBike: "bike",
	ActionSurf: "surf",
	ActionDive: "dive",
	ActionFish: "fish",
}

// String 返回动作名称（同时也是资源文件名和偏移表的键）
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Valid 检查动作是否属于已知集合
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction 根据名称解析动作
func ParseAction(name string) (Action, error) {
	for action, actionName := range actionNames {
		if actionName == name {
			return action, nil
		}
	}
	return ActionWalk, fmt.Errorf("unknown action: %q", name)
}
