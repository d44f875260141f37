package types

// Direction 定义角色朝向，对应精灵图中的行
type Direction int

const (
	// DirectionDown 面向下（第 0 行）
	DirectionDown Direction = iota
	// DirectionLeft 面向左（第 1 行）
	DirectionLeft
	// DirectionRight 面向右（第 2 行）
	DirectionRight
	// DirectionUp 面向上（第 3 行）
	DirectionUp
)

// DirectionCount 精灵图的方向行数
const DirectionCount = 4

// String 返回朝向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "Down"
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	case DirectionUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Valid 检查朝向是否在 [0, DirectionCount) 范围内
func (d Direction) Valid() bool {
	return d >= DirectionDown && d <= DirectionUp
}
