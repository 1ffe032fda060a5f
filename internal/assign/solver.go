package assign

import (
	"cmp"
	"slices"

	"roomops-data/internal/domain"
)

// 平衡容差与软性加分权重。
// 加分只在 TotalWeight 与最小值相差不超过容差的候选组之间起作用，
// 永远不会推翻首要的负载均衡标准。
const (
	// BalanceToleranceMinutes 允许加分介入的负载差窗口
	BalanceToleranceMinutes = 15

	// localityWeight > affinityWeight：同翼/邻近优先于历史搭配
	localityWeight = 2.0
	affinityWeight = 1.0

	// affinityCapCount 同组次数达到该值即视为满分（防止个别高频对垄断）
	affinityCapCount = 10

	// scoreEpsilon 浮点分数比较容差
	scoreEpsilon = 1e-9
)

// AutoAssignRooms 把待清扫房间分配到每位员工一个工作组。
// 贪心的 LPT 风格均衡启发式（一般均衡划分问题是 NP-hard，不保证全局最优）：
// checkout 房间全部先于 daily 房间处理（硬优先级），每间房落到当前负载最小、
// 在容差窗口内由邻近/亲和加分决定的组里。
//
// 总是精确返回 len(staff) 个组（包括零房间的员工）。
// 前置条件：rooms 非空时 staff 不能为空，由调用方保证（见 service 层）。
// prox / affinity 可为 nil：对应加分直接跳过，不影响分配完成。
func AutoAssignRooms(rooms []*domain.Room, staff []*domain.Staff, prox WingProximityMap, affinity RoomAffinityMap) []*WorkloadBin {
	bins := make([]*WorkloadBin, 0, len(staff))
	for _, s := range staff {
		bins = append(bins, &WorkloadBin{
			StaffID:   s.StaffID,
			StaffName: s.DisplayName(),
			Rooms:     []*domain.Room{},
		})
	}

	for _, room := range orderRooms(rooms) {
		bin := chooseBin(bins, room, prox, affinity)
		if bin == nil {
			// staff 为空且 rooms 非空：前置条件被违反，调用方必须先拦截
			break
		}
		bin.Rooms = append(bin.Rooms, room)
		bin.TotalWeight += Weight(room)
		if room.IsCheckoutRoom {
			bin.CheckoutCount++
		} else {
			bin.DailyCount++
		}
	}

	for _, b := range bins {
		b.finalize()
	}
	return bins
}

// orderRooms 排队：checkout 在前、daily 在后；
// 各队内按（楼层，房号数字，房号）稳定排序，保持可步行顺序
func orderRooms(rooms []*domain.Room) []*domain.Room {
	checkouts := make([]*domain.Room, 0, len(rooms))
	dailies := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsCheckoutRoom {
			checkouts = append(checkouts, r)
		} else {
			dailies = append(dailies, r)
		}
	}
	byWalkOrder := func(a, b *domain.Room) int {
		if c := cmp.Compare(RoomFloor(a), RoomFloor(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(NumericPart(a.RoomNumber), NumericPart(b.RoomNumber)); c != 0 {
			return c
		}
		return cmp.Compare(a.RoomNumber, b.RoomNumber)
	}
	slices.SortStableFunc(checkouts, byWalkOrder)
	slices.SortStableFunc(dailies, byWalkOrder)
	return append(checkouts, dailies...)
}

// chooseBin 负载最小优先；容差窗口内用 locality/affinity 加分挑选。
// 分数持平时取负载更小的组，再持平取靠前的组（保证确定性）。
func chooseBin(bins []*WorkloadBin, room *domain.Room, prox WingProximityMap, affinity RoomAffinityMap) *WorkloadBin {
	if len(bins) == 0 {
		return nil
	}

	minWeight := bins[0].TotalWeight
	for _, b := range bins[1:] {
		if b.TotalWeight < minWeight {
			minWeight = b.TotalWeight
		}
	}

	var best *WorkloadBin
	bestScore := 0.0
	for _, b := range bins {
		if b.TotalWeight > minWeight+BalanceToleranceMinutes {
			continue
		}
		score := localityWeight*localityBonus(b, room, prox) + affinityWeight*affinityBonus(b, room, affinity)
		switch {
		case best == nil:
			best, bestScore = b, score
		case score > bestScore+scoreEpsilon:
			best, bestScore = b, score
		case score > bestScore-scoreEpsilon && b.TotalWeight < best.TotalWeight:
			best, bestScore = b, score
		}
	}
	return best
}

// localityBonus [0,1]：组内已有房间与候选房间的最近翼区距离。
// 同层同翼记满分；坐标缺失的翼区直接跳过（降级）。
func localityBonus(b *WorkloadBin, room *domain.Room, prox WingProximityMap) float64 {
	if !room.Wing.Valid || room.Wing.String == "" {
		return 0
	}
	floor := RoomFloor(room)
	best := 0.0
	for _, r := range b.Rooms {
		if !r.Wing.Valid || r.Wing.String == "" {
			continue
		}
		rFloor := RoomFloor(r)
		if rFloor == floor && r.Wing.String == room.Wing.String {
			return 1.0
		}
		d, ok := prox.Distance(floor, room.Wing.String, rFloor, r.Wing.String)
		if !ok {
			continue
		}
		if s := 1.0 / (1.0 + d); s > best {
			best = s
		}
	}
	return best
}

// affinityBonus [0,1]：组内房间与候选房间的最高同组次数，按 affinityCapCount 归一化
func affinityBonus(b *WorkloadBin, room *domain.Room, affinity RoomAffinityMap) float64 {
	if affinity == nil {
		return 0
	}
	maxCount := 0
	for _, r := range b.Rooms {
		if c := affinity.Count(room.RoomNumber, r.RoomNumber); c > maxCount {
			maxCount = c
		}
	}
	if maxCount > affinityCapCount {
		maxCount = affinityCapCount
	}
	return float64(maxCount) / float64(affinityCapCount)
}
