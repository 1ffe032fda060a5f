package assign

import (
	"roomops-data/internal/domain"
)

// 工时模型常量（分钟）
const (
	// CheckoutMinutes 退房房基础清扫耗时
	CheckoutMinutes = 45
	// DailyMinutes 住客房（日常打扫）基础耗时
	DailyMinutes = 25
	// TowelChangeMinutes 换毛巾附加耗时
	TowelChangeMinutes = 5
	// LinenChangeMinutes 换床品附加耗时
	LinenChangeMinutes = 10
	// LargeRoomMinutes 大房型附加耗时（面积超过阈值）
	LargeRoomMinutes      = 10
	LargeRoomThresholdSqm = 40.0

	// BreakTimeMinutes 非空工作组固定休息时间
	BreakTimeMinutes = 30
	// ShiftMinutes 标准班次时长（8小时）
	ShiftMinutes = 8 * 60
)

// Weight 估算单间清扫耗时（分钟）。
// 纯函数：相同输入永远得到相同输出（增量重算依赖这一点），永不失败。
func Weight(room *domain.Room) int {
	w := DailyMinutes
	if room.IsCheckoutRoom {
		w = CheckoutMinutes
	}
	if room.TowelChangeRequired {
		w += TowelChangeMinutes
	}
	if room.LinenChangeRequired {
		w += LinenChangeMinutes
	}
	if room.RoomSizeSqm.Valid && room.RoomSizeSqm.Float64 > LargeRoomThresholdSqm {
		w += LargeRoomMinutes
	}
	return w
}
