package repository

import (
	"context"
	"time"

	"roomops-data/internal/domain"
)

// AssignmentsRepository 清扫分配Repository接口
type AssignmentsRepository interface {
	// ReplaceForDate 以事务方式替换某酒店某日的全部分配记录
	ReplaceForDate(ctx context.Context, hotelID string, date time.Time, records []*domain.AssignmentRecord) error
	ListForDate(ctx context.Context, hotelID string, date time.Time) ([]*domain.AssignmentRecord, error)
	// ListDaySheet 导出用：关联房号与员工姓名的当日清单，按员工、priority 排序
	ListDaySheet(ctx context.Context, hotelID string, date time.Time) ([]*DaySheetRow, error)
}

// DaySheetRow 当日清扫清单行（导出 Excel 用）
type DaySheetRow struct {
	StaffID        string
	StaffName      string
	RoomNumber     string
	Wing           string
	AssignmentType string
	Priority       int
}
