package domain

import (
	"database/sql"
)

// Staff 清洁员工领域模型（对应 housekeeping_staff 表）
type Staff struct {
	StaffID  string         `db:"staff_id"`
	HotelID  string         `db:"hotel_id"`
	FullName string         `db:"full_name"`
	Nickname sql.NullString `db:"nickname"` // nullable
	Status   string         `db:"status"`   // 'active' | 'inactive'
}

// DisplayName 优先返回昵称
func (s *Staff) DisplayName() string {
	if s.Nickname.Valid && s.Nickname.String != "" {
		return s.Nickname.String
	}
	return s.FullName
}
