package repository

import (
	"context"

	"roomops-data/internal/domain"
)

// RoomsRepository 客房Repository接口
// 使用强类型领域模型，不使用map[string]any
type RoomsRepository interface {
	// ListCleaningQueue 当日待清扫房间（status='dirty'）。
	// 只做粗排（楼层 + 房号字典序），最终步行顺序由求解器决定
	ListCleaningQueue(ctx context.Context, hotelID string) ([]*domain.Room, error)
	ListRooms(ctx context.Context, hotelID string, filters RoomFilters) ([]*domain.Room, error)
	GetRoom(ctx context.Context, hotelID, roomID string) (*domain.Room, error)
	// UpsertRoomStatus PMS 同步用：按房号更新清扫状态与退房/换品标记
	UpsertRoomStatus(ctx context.Context, hotelID, roomNumber string, upd RoomStatusUpdate) error
	// SetRoomsStatus 批量更新房间清扫状态（确认分配后使用）
	SetRoomsStatus(ctx context.Context, hotelID string, roomIDs []string, status string) error
}

// RoomFilters 客房查询过滤器
type RoomFilters struct {
	Status      string
	Wing        string
	FloorNumber *int
	Search      string // 模糊搜索 room_number
}

// RoomStatusUpdate PMS 同步的字段集合
type RoomStatusUpdate struct {
	Status              string
	IsCheckoutRoom      bool
	TowelChangeRequired bool
	LinenChangeRequired bool
}
