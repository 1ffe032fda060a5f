package assign

import (
	"errors"

	"roomops-data/internal/domain"
)

var (
	// ErrBinNotFound 指定的员工不在当前分组里
	ErrBinNotFound = errors.New("staff bin not found")
	// ErrRoomNotInBin 房间不在声称的来源分组里；输入原样返回，由调用方提示失败
	ErrRoomNotInBin = errors.New("room not in source bin")
)

// MoveRoomCommand 一次手动拖拽：把房间从一个员工移到另一个。
// 离散、可重放，与任何渲染层解耦。
type MoveRoomCommand struct {
	RoomID      string `json:"room_id"`
	FromStaffID string `json:"from_staff_id"`
	ToStaffID   string `json:"to_staff_id"`
}

// Apply 在不可变分组数组上应用命令
func (c MoveRoomCommand) Apply(bins []*WorkloadBin) ([]*WorkloadBin, error) {
	return MoveRoom(bins, c.RoomID, c.FromStaffID, c.ToStaffID)
}

// MoveRoom 返回新的分组数组，原数组不被修改（方便 undo/redo 和前端状态更新）。
// 只重算受影响的两个组，其余组按引用原样保留。
// from == to 为 no-op；房间不在来源组时返回输入和 ErrRoomNotInBin。
func MoveRoom(bins []*WorkloadBin, roomID, fromStaffID, toStaffID string) ([]*WorkloadBin, error) {
	fromIdx, toIdx := -1, -1
	for i, b := range bins {
		if b.StaffID == fromStaffID {
			fromIdx = i
		}
		if b.StaffID == toStaffID {
			toIdx = i
		}
	}
	if fromIdx == -1 || toIdx == -1 {
		return bins, ErrBinNotFound
	}

	if fromStaffID == toStaffID {
		out := make([]*WorkloadBin, len(bins))
		copy(out, bins)
		return out, nil
	}

	from := bins[fromIdx]
	roomIdx := -1
	for i, r := range from.Rooms {
		if r.RoomID == roomID {
			roomIdx = i
			break
		}
	}
	if roomIdx == -1 {
		return bins, ErrRoomNotInBin
	}
	room := from.Rooms[roomIdx]

	newFrom := &WorkloadBin{
		StaffID:   from.StaffID,
		StaffName: from.StaffName,
		Rooms:     make([]*domain.Room, 0, len(from.Rooms)-1),
	}
	newFrom.Rooms = append(newFrom.Rooms, from.Rooms[:roomIdx]...)
	newFrom.Rooms = append(newFrom.Rooms, from.Rooms[roomIdx+1:]...)
	newFrom.recompute()

	to := bins[toIdx]
	insertAt := len(to.Rooms)
	if room.IsCheckoutRoom {
		// checkout 插在 checkout/daily 分界处，保持组内优先级顺序
		insertAt = 0
		for i, r := range to.Rooms {
			if r.IsCheckoutRoom {
				insertAt = i + 1
			}
		}
	}
	newTo := &WorkloadBin{
		StaffID:   to.StaffID,
		StaffName: to.StaffName,
	}
	newTo.Rooms = append(newTo.Rooms, to.Rooms[:insertAt]...)
	newTo.Rooms = append(newTo.Rooms, room)
	newTo.Rooms = append(newTo.Rooms, to.Rooms[insertAt:]...)
	newTo.recompute()

	out := make([]*WorkloadBin, len(bins))
	copy(out, bins)
	out[fromIdx] = newFrom
	out[toIdx] = newTo
	return out, nil
}
