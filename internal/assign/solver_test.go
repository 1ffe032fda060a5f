package assign

import (
	"database/sql"
	"fmt"
	"testing"

	"roomops-data/internal/domain"

	"github.com/stretchr/testify/require"
)

// ---- 测试数据构造 ----

func checkoutRoom(id, number string) *domain.Room {
	return &domain.Room{RoomID: id, HotelID: "h1", RoomNumber: number, IsCheckoutRoom: true, Status: domain.RoomStatusDirty}
}

func dailyRoom(id, number string) *domain.Room {
	return &domain.Room{RoomID: id, HotelID: "h1", RoomNumber: number, IsCheckoutRoom: false, Status: domain.RoomStatusDirty}
}

func wingRoom(id, number, wing string, checkout bool) *domain.Room {
	r := &domain.Room{RoomID: id, HotelID: "h1", RoomNumber: number, IsCheckoutRoom: checkout, Status: domain.RoomStatusDirty}
	r.Wing = sql.NullString{String: wing, Valid: true}
	return r
}

func staffMember(id, name string) *domain.Staff {
	return &domain.Staff{StaffID: id, HotelID: "h1", FullName: name, Status: "active"}
}

// collectRoomIDs 所有分组包含的房间 ID 计数（守恒性检查用）
func collectRoomIDs(bins []*WorkloadBin) map[string]int {
	out := map[string]int{}
	for _, b := range bins {
		for _, r := range b.Rooms {
			out[r.RoomID]++
		}
	}
	return out
}

func requireConservation(t *testing.T, rooms []*domain.Room, bins []*WorkloadBin) {
	t.Helper()
	got := collectRoomIDs(bins)
	require.Len(t, got, len(rooms))
	for _, r := range rooms {
		require.Equal(t, 1, got[r.RoomID], "room %s must appear exactly once", r.RoomID)
	}
}

func requireInvariants(t *testing.T, bins []*WorkloadBin) {
	t.Helper()
	for _, b := range bins {
		sum := 0
		checkouts, dailies := 0, 0
		seenDaily := false
		for _, r := range b.Rooms {
			sum += Weight(r)
			if r.IsCheckoutRoom {
				checkouts++
				require.False(t, seenDaily, "bin %s: checkout room after daily room", b.StaffID)
			} else {
				dailies++
				seenDaily = true
			}
		}
		require.Equal(t, sum, b.TotalWeight, "bin %s total weight", b.StaffID)
		require.Equal(t, checkouts, b.CheckoutCount)
		require.Equal(t, dailies, b.DailyCount)
		if len(b.Rooms) == 0 {
			require.Equal(t, b.TotalWeight, b.TotalWithBreak)
		} else {
			require.Equal(t, b.TotalWeight+BreakTimeMinutes, b.TotalWithBreak)
		}
		require.Equal(t, b.TotalWithBreak > ShiftMinutes, b.ExceedsShift)
		wantOverage := 0
		if b.TotalWithBreak > ShiftMinutes {
			wantOverage = b.TotalWithBreak - ShiftMinutes
		}
		require.Equal(t, wantOverage, b.OverageMinutes)
	}
}

// ---- 场景用例 ----

func TestAutoAssignRooms_BalancesEqualCheckouts(t *testing.T) {
	// 10 间 checkout（各 45 分钟）分给 2 人 → 每人 5 间、225 分钟
	rooms := make([]*domain.Room, 0, 10)
	for i := 0; i < 10; i++ {
		rooms = append(rooms, checkoutRoom(fmt.Sprintf("r%d", i+1), fmt.Sprintf("%d", 101+i)))
	}
	staff := []*domain.Staff{staffMember("s1", "Alice"), staffMember("s2", "Bea")}

	bins := AutoAssignRooms(rooms, staff, nil, nil)
	require.Len(t, bins, 2)
	for _, b := range bins {
		require.Len(t, b.Rooms, 5)
		require.Equal(t, 5*CheckoutMinutes, b.TotalWeight)
	}
	requireConservation(t, rooms, bins)
	requireInvariants(t, bins)
}

func TestAutoAssignRooms_SingleRoomSingleStaff(t *testing.T) {
	rooms := []*domain.Room{checkoutRoom("r1", "101")}
	staff := []*domain.Staff{staffMember("s1", "A")}

	bins := AutoAssignRooms(rooms, staff, nil, nil)
	require.Len(t, bins, 1)
	require.Len(t, bins[0].Rooms, 1)
	require.Equal(t, "r1", bins[0].Rooms[0].RoomID)
	require.Equal(t, 1, bins[0].CheckoutCount)
	require.Equal(t, 0, bins[0].DailyCount)
	require.Equal(t, CheckoutMinutes, bins[0].TotalWeight)
	require.Equal(t, CheckoutMinutes+BreakTimeMinutes, bins[0].TotalWithBreak)
}

func TestAutoAssignRooms_SurplusStaffGetEmptyBins(t *testing.T) {
	rooms := []*domain.Room{
		checkoutRoom("r1", "101"),
		checkoutRoom("r2", "102"),
		checkoutRoom("r3", "103"),
	}
	staff := []*domain.Staff{
		staffMember("s1", "A"), staffMember("s2", "B"), staffMember("s3", "C"),
		staffMember("s4", "D"), staffMember("s5", "E"),
	}

	bins := AutoAssignRooms(rooms, staff, nil, nil)
	require.Len(t, bins, 5)
	nonEmpty, empty := 0, 0
	for _, b := range bins {
		if len(b.Rooms) == 0 {
			empty++
			require.Zero(t, b.TotalWeight)
			require.Zero(t, b.TotalWithBreak)
			require.False(t, b.ExceedsShift)
		} else {
			nonEmpty++
			require.Len(t, b.Rooms, 1)
		}
	}
	require.Equal(t, 3, nonEmpty)
	require.Equal(t, 2, empty)
	requireConservation(t, rooms, bins)
}

func TestAutoAssignRooms_ZeroRooms(t *testing.T) {
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B")}
	bins := AutoAssignRooms(nil, staff, nil, nil)
	require.Len(t, bins, 2)
	for _, b := range bins {
		require.Empty(t, b.Rooms)
		require.Zero(t, b.TotalWeight)
		require.Zero(t, b.TotalWithBreak)
		require.False(t, b.ExceedsShift)
	}
}

func TestAutoAssignRooms_SingleStaffOverageReported(t *testing.T) {
	// 一个人扫 12 间退房房必然超班，引擎照常返回并标记
	rooms := make([]*domain.Room, 0, 12)
	for i := 0; i < 12; i++ {
		rooms = append(rooms, checkoutRoom(fmt.Sprintf("r%d", i+1), fmt.Sprintf("%d", 101+i)))
	}
	staff := []*domain.Staff{staffMember("s1", "Solo")}

	bins := AutoAssignRooms(rooms, staff, nil, nil)
	require.Len(t, bins, 1)
	require.True(t, bins[0].ExceedsShift)
	require.Equal(t, 12*CheckoutMinutes+BreakTimeMinutes-ShiftMinutes, bins[0].OverageMinutes)
	requireInvariants(t, bins)
}

func TestAutoAssignRooms_CheckoutsBeforeDailies(t *testing.T) {
	rooms := []*domain.Room{
		dailyRoom("d1", "110"),
		checkoutRoom("c1", "305"),
		dailyRoom("d2", "210"),
		checkoutRoom("c2", "102"),
		dailyRoom("d3", "104"),
		checkoutRoom("c3", "1203"),
	}
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B")}

	bins := AutoAssignRooms(rooms, staff, nil, nil)
	requireConservation(t, rooms, bins)
	requireInvariants(t, bins)

	// 组内按楼层/房号步行顺序
	for _, b := range bins {
		lastFloor, lastNum := -1, -1
		sawDaily := false
		for _, r := range b.Rooms {
			if !r.IsCheckoutRoom {
				if !sawDaily {
					sawDaily = true
					lastFloor, lastNum = -1, -1
				}
			}
			f, n := RoomFloor(r), NumericPart(r.RoomNumber)
			require.True(t, f > lastFloor || (f == lastFloor && n >= lastNum),
				"bin %s rooms out of walk order", b.StaffID)
			lastFloor, lastNum = f, n
		}
	}
}

func TestAutoAssignRooms_WeightConservation(t *testing.T) {
	rooms := []*domain.Room{
		checkoutRoom("c1", "101"), checkoutRoom("c2", "305"),
		dailyRoom("d1", "102"), dailyRoom("d2", "812"), dailyRoom("d3", "X"),
	}
	rooms[2].TowelChangeRequired = true
	rooms[3].LinenChangeRequired = true
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B"), staffMember("s3", "C")}

	bins := AutoAssignRooms(rooms, staff, nil, nil)

	wantTotal := 0
	for _, r := range rooms {
		wantTotal += Weight(r)
	}
	gotTotal := 0
	for _, b := range bins {
		gotTotal += b.TotalWeight
	}
	require.Equal(t, wantTotal, gotTotal)
}

func TestAutoAssignRooms_AffinityTieBreak(t *testing.T) {
	// 101 和 201 历史常同组：两组负载持平时 201 应跟着 101 走。
	// 排序后处理顺序为 101, 102, 201：前两间各占一组，第三间在平局时由亲和决定。
	rooms := []*domain.Room{
		checkoutRoom("r101", "101"),
		checkoutRoom("r201", "201"),
		checkoutRoom("r102", "102"),
	}
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B")}
	affinity := BuildAffinityMap([]*domain.RoomPairCount{
		{HotelID: "h1", RoomNumberA: "101", RoomNumberB: "201", PairCount: 8},
	})

	bins := AutoAssignRooms(rooms, staff, nil, affinity)
	requireConservation(t, rooms, bins)

	var with101 *WorkloadBin
	for _, b := range bins {
		for _, r := range b.Rooms {
			if r.RoomID == "r101" {
				with101 = b
			}
		}
	}
	require.NotNil(t, with101)
	ids := map[string]bool{}
	for _, r := range with101.Rooms {
		ids[r.RoomID] = true
	}
	require.True(t, ids["r201"], "201 should join 101's bin on affinity tie-break")
}

func TestAutoAssignRooms_LocalityTieBreak(t *testing.T) {
	// 305 与 301 同层同翼：负载持平时应同组。
	// 处理顺序 301, 303, 305：前两间各占一组，第三间平局时看翼区。
	rooms := []*domain.Room{
		wingRoom("r301", "301", "East", true),
		wingRoom("r303", "303", "West", true),
		wingRoom("r305", "305", "East", true),
	}
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B")}

	bins := AutoAssignRooms(rooms, staff, nil, nil)
	requireConservation(t, rooms, bins)

	var with301 *WorkloadBin
	for _, b := range bins {
		for _, r := range b.Rooms {
			if r.RoomID == "r301" {
				with301 = b
			}
		}
	}
	require.NotNil(t, with301)
	ids := map[string]bool{}
	for _, r := range with301.Rooms {
		ids[r.RoomID] = true
	}
	require.True(t, ids["r305"], "305 should join 301's bin on same-wing tie-break")
}

func TestAutoAssignRooms_LocalityOutranksAffinity(t *testing.T) {
	// 同翼加分权重高于历史搭配加分
	rooms := []*domain.Room{
		wingRoom("rEast", "301", "East", true),
		wingRoom("rWest", "303", "West", true),
		wingRoom("rNew", "305", "East", true),
	}
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B")}
	affinity := BuildAffinityMap([]*domain.RoomPairCount{
		{HotelID: "h1", RoomNumberA: "305", RoomNumberB: "303", PairCount: 10},
	})

	bins := AutoAssignRooms(rooms, staff, nil, affinity)

	var withEast *WorkloadBin
	for _, b := range bins {
		for _, r := range b.Rooms {
			if r.RoomID == "rEast" {
				withEast = b
			}
		}
	}
	require.NotNil(t, withEast)
	ids := map[string]bool{}
	for _, r := range withEast.Rooms {
		ids[r.RoomID] = true
	}
	require.True(t, ids["rNew"], "same wing should outrank historical pairing")
}

func TestAutoAssignRooms_BonusNeverOverridesBalance(t *testing.T) {
	// s1 已有两间重房，103 和 101 高亲和也不能再压给 s1
	rooms := []*domain.Room{
		checkoutRoom("r101", "101"),
		checkoutRoom("r102", "102"),
		checkoutRoom("r103", "103"),
	}
	staff := []*domain.Staff{staffMember("s1", "A"), staffMember("s2", "B")}
	affinity := BuildAffinityMap([]*domain.RoomPairCount{
		{HotelID: "h1", RoomNumberA: "101", RoomNumberB: "102", PairCount: 10},
		{HotelID: "h1", RoomNumberA: "101", RoomNumberB: "103", PairCount: 10},
		{HotelID: "h1", RoomNumberA: "102", RoomNumberB: "103", PairCount: 10},
	})

	bins := AutoAssignRooms(rooms, staff, nil, affinity)
	// 45 的单间权重远超 15 分钟容差，102 之后的 103 必须去负载小的组
	for _, b := range bins {
		require.LessOrEqual(t, len(b.Rooms), 2)
		require.GreaterOrEqual(t, len(b.Rooms), 1)
	}
	requireConservation(t, rooms, bins)
}
