package repository

import (
	"context"

	"roomops-data/internal/domain"
)

// StaffRepository 清洁员工Repository接口
type StaffRepository interface {
	// ListActiveStaff 当日可用员工（status='active'），按姓名排序
	ListActiveStaff(ctx context.Context, hotelID string) ([]*domain.Staff, error)
	// ListStaffByIDs 按 ID 集合取员工；结果按入参顺序返回
	ListStaffByIDs(ctx context.Context, hotelID string, staffIDs []string) ([]*domain.Staff, error)
	GetStaff(ctx context.Context, hotelID, staffID string) (*domain.Staff, error)
}
