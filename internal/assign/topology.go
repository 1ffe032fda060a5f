package assign

import (
	"database/sql"
	"math"
	"strconv"

	"roomops-data/internal/domain"
)

// wingKey (floor, wing) 组合键
type wingKey struct {
	Floor int
	Wing  string
}

type point struct {
	X float64
	Y float64
}

// WingProximityMap (floor, wing) -> 平面坐标。
// 每次会话从 hotel_wing_layout 构建一次，只读。
type WingProximityMap map[wingKey]point

// BuildWingProximityMap 从酒店布局行构建坐标索引
func BuildWingProximityMap(rows []*domain.WingCoordinate) WingProximityMap {
	m := make(WingProximityMap, len(rows))
	for _, r := range rows {
		m[wingKey{Floor: r.FloorNumber, Wing: r.Wing}] = point{X: r.X, Y: r.Y}
	}
	return m
}

// Distance 两个翼区间的欧氏距离。
// 任一翼区不在索引中时返回 ok=false，调用方跳过邻近加分（降级，不报错）。
func (m WingProximityMap) Distance(floorA int, wingA string, floorB int, wingB string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	a, okA := m[wingKey{Floor: floorA, Wing: wingA}]
	b, okB := m[wingKey{Floor: floorB, Wing: wingB}]
	if !okA || !okB {
		return 0, false
	}
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy), true
}

// FloorOf 返回房间楼层：显式字段优先，否则从房号的数字部分推导。
// 规则：取房号中第一段连续数字；3位及以上时去掉末两位即楼层
// （如 "305" -> 3，"1203" -> 12，"A305" -> 3）；1-2位视为底层（0）。
func FloorOf(roomNumber string, explicit sql.NullInt64) int {
	if explicit.Valid {
		return int(explicit.Int64)
	}
	digits := leadingDigits(roomNumber)
	if len(digits) < 3 {
		return 0
	}
	floor, err := strconv.Atoi(digits[:len(digits)-2])
	if err != nil {
		return 0
	}
	return floor
}

// RoomFloor FloorOf 的域模型便捷封装
func RoomFloor(room *domain.Room) int {
	return FloorOf(room.RoomNumber, room.FloorNumber)
}

// NumericPart 房号数字部分（用于步行顺序排序）；无数字时返回 0
func NumericPart(roomNumber string) int {
	digits := leadingDigits(roomNumber)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// leadingDigits 第一段连续数字
func leadingDigits(s string) string {
	start := -1
	for i, c := range s {
		if c >= '0' && c <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			return s[start:i]
		}
	}
	if start == -1 {
		return ""
	}
	return s[start:]
}
