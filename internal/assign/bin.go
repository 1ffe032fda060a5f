package assign

import (
	"roomops-data/internal/domain"
)

// WorkloadBin 一名员工当日的工作量分组（预览单位）。
// 不变量：
//   - TotalWeight == Σ Weight(room)
//   - 非空组 TotalWithBreak == TotalWeight + BreakTimeMinutes，空组等于 TotalWeight
//   - ExceedsShift == TotalWithBreak > ShiftMinutes
//   - OverageMinutes == max(0, TotalWithBreak - ShiftMinutes)
//
// 由 AutoAssignRooms 创建，之后只通过 MoveRoom 变更。
// 不直接序列化：对外的 JSON 形态由 service 层的视图负责。
type WorkloadBin struct {
	StaffID        string
	StaffName      string
	Rooms          []*domain.Room
	TotalWeight    int
	TotalWithBreak int
	ExceedsShift   bool
	OverageMinutes int
	CheckoutCount  int
	DailyCount     int
}

// recompute 依据房间列表重算全部聚合字段
func (b *WorkloadBin) recompute() {
	b.TotalWeight = 0
	b.CheckoutCount = 0
	b.DailyCount = 0
	for _, r := range b.Rooms {
		b.TotalWeight += Weight(r)
		if r.IsCheckoutRoom {
			b.CheckoutCount++
		} else {
			b.DailyCount++
		}
	}
	b.finalize()
}

// finalize 由 TotalWeight 推导 TotalWithBreak / ExceedsShift / OverageMinutes
func (b *WorkloadBin) finalize() {
	if len(b.Rooms) == 0 {
		b.TotalWithBreak = b.TotalWeight
	} else {
		b.TotalWithBreak = b.TotalWeight + BreakTimeMinutes
	}
	b.ExceedsShift = b.TotalWithBreak > ShiftMinutes
	if b.TotalWithBreak > ShiftMinutes {
		b.OverageMinutes = b.TotalWithBreak - ShiftMinutes
	} else {
		b.OverageMinutes = 0
	}
}
