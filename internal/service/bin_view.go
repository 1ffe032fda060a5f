package service

import (
	"database/sql"

	"roomops-data/internal/assign"
	"roomops-data/internal/domain"
)

// RoomView 分组内房间的 JSON 视图（预览响应与 Redis 草稿的线上形态）。
// 字段必须覆盖权重与楼层推导的全部输入：草稿回读后的手动移动要重算
// 受影响分组，视图缺字段会导致重算漂移。
type RoomView struct {
	RoomID              string   `json:"room_id"`
	RoomNumber          string   `json:"room_number"`
	Floor               int      `json:"floor"`
	Wing                string   `json:"wing,omitempty"`
	RoomSizeSqm         *float64 `json:"room_size_sqm,omitempty"`
	IsCheckoutRoom      bool     `json:"is_checkout_room"`
	TowelChangeRequired bool     `json:"towel_change_required"`
	LinenChangeRequired bool     `json:"linen_change_required"`
	WeightMinutes       int      `json:"weight_minutes"`
}

// BinView 工作量分组的 JSON 视图
type BinView struct {
	StaffID        string      `json:"staff_id"`
	StaffName      string      `json:"staff_name"`
	Rooms          []*RoomView `json:"rooms"`
	TotalWeight    int         `json:"total_weight"`
	TotalWithBreak int         `json:"total_with_break"`
	ExceedsShift   bool        `json:"exceeds_shift"`
	OverageMinutes int         `json:"overage_minutes"`
	CheckoutCount  int         `json:"checkout_count"`
	DailyCount     int         `json:"daily_count"`
}

func toRoomView(r *domain.Room) *RoomView {
	v := &RoomView{
		RoomID:              r.RoomID,
		RoomNumber:          r.RoomNumber,
		Floor:               assign.RoomFloor(r),
		IsCheckoutRoom:      r.IsCheckoutRoom,
		TowelChangeRequired: r.TowelChangeRequired,
		LinenChangeRequired: r.LinenChangeRequired,
		WeightMinutes:       assign.Weight(r),
	}
	if r.Wing.Valid {
		v.Wing = r.Wing.String
	}
	if r.RoomSizeSqm.Valid {
		size := r.RoomSizeSqm.Float64
		v.RoomSizeSqm = &size
	}
	return v
}

// toDomain 还原引擎输入。Floor 回填为显式楼层（推导规则下显式值优先，
// 所以二次推导结果不变）；空 Wing 与缺失 Wing 对邻近加分等价。
func (v *RoomView) toDomain() *domain.Room {
	r := &domain.Room{
		RoomID:              v.RoomID,
		RoomNumber:          v.RoomNumber,
		FloorNumber:         sql.NullInt64{Int64: int64(v.Floor), Valid: true},
		IsCheckoutRoom:      v.IsCheckoutRoom,
		TowelChangeRequired: v.TowelChangeRequired,
		LinenChangeRequired: v.LinenChangeRequired,
	}
	if v.Wing != "" {
		r.Wing = sql.NullString{String: v.Wing, Valid: true}
	}
	if v.RoomSizeSqm != nil {
		r.RoomSizeSqm = sql.NullFloat64{Float64: *v.RoomSizeSqm, Valid: true}
	}
	return r
}

func toBinViews(bins []*assign.WorkloadBin) []*BinView {
	out := make([]*BinView, 0, len(bins))
	for _, b := range bins {
		v := &BinView{
			StaffID:        b.StaffID,
			StaffName:      b.StaffName,
			Rooms:          make([]*RoomView, 0, len(b.Rooms)),
			TotalWeight:    b.TotalWeight,
			TotalWithBreak: b.TotalWithBreak,
			ExceedsShift:   b.ExceedsShift,
			OverageMinutes: b.OverageMinutes,
			CheckoutCount:  b.CheckoutCount,
			DailyCount:     b.DailyCount,
		}
		for _, r := range b.Rooms {
			v.Rooms = append(v.Rooms, toRoomView(r))
		}
		out = append(out, v)
	}
	return out
}

// toEngineBins 草稿视图还原为引擎分组；聚合值照搬（原本就由引擎算出）
func toEngineBins(views []*BinView) []*assign.WorkloadBin {
	out := make([]*assign.WorkloadBin, 0, len(views))
	for _, v := range views {
		b := &assign.WorkloadBin{
			StaffID:        v.StaffID,
			StaffName:      v.StaffName,
			Rooms:          make([]*domain.Room, 0, len(v.Rooms)),
			TotalWeight:    v.TotalWeight,
			TotalWithBreak: v.TotalWithBreak,
			ExceedsShift:   v.ExceedsShift,
			OverageMinutes: v.OverageMinutes,
			CheckoutCount:  v.CheckoutCount,
			DailyCount:     v.DailyCount,
		}
		for _, r := range v.Rooms {
			b.Rooms = append(b.Rooms, r.toDomain())
		}
		out = append(out, b)
	}
	return out
}
