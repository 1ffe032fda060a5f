package domain

import (
	"time"
)

// AssignmentType 取值
const (
	AssignmentTypeCheckout = "checkout"
	AssignmentTypeDaily    = "daily"
)

// AssignmentRecord 已确认的清扫分配（对应 housekeeping_assignments 表）
// priority: 同一员工当日的清扫顺序，checkout 房间编号在 daily 之前
type AssignmentRecord struct {
	AssignmentID   string    `db:"assignment_id"`
	HotelID        string    `db:"hotel_id"`
	RoomID         string    `db:"room_id"`
	StaffID        string    `db:"staff_id"`
	AssignmentDate time.Time `db:"assignment_date"`
	AssignmentType string    `db:"assignment_type"` // 'checkout' | 'daily'
	Priority       int       `db:"priority"`
	CreatedAt      time.Time `db:"created_at"`
}
