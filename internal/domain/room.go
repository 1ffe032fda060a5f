package domain

import (
	"database/sql"
)

// Room 客房领域模型（对应 rooms 表）
// room_number 不保证纯数字（如 "A305"）；floor_number 可空，缺省时由房号推导
type Room struct {
	RoomID              string          `db:"room_id"`
	HotelID             string          `db:"hotel_id"`
	RoomNumber          string          `db:"room_number"`
	FloorNumber         sql.NullInt64   `db:"floor_number"`   // nullable
	Wing                sql.NullString  `db:"wing"`           // nullable
	RoomSizeSqm         sql.NullFloat64 `db:"room_size_sqm"`  // nullable
	RoomCapacity        sql.NullInt64   `db:"room_capacity"`  // nullable
	IsCheckoutRoom      bool            `db:"is_checkout_room"`
	Status              string          `db:"status"` // 'dirty' | 'clean' | 'inspected' | 'out_of_order'
	TowelChangeRequired bool            `db:"towel_change_required"`
	LinenChangeRequired bool            `db:"linen_change_required"`
	RoomCategory        sql.NullString  `db:"room_category"` // nullable
}

// RoomStatus 取值
const (
	RoomStatusDirty      = "dirty"
	RoomStatusClean      = "clean"
	RoomStatusInspected  = "inspected"
	RoomStatusOutOfOrder = "out_of_order"
)
