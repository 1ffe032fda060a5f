package repository

import (
	"context"

	"roomops-data/internal/domain"
)

// LayoutRepository 酒店翼区布局Repository接口
// 布局是可选数据：查不到时返回空切片，调用方据此跳过邻近加分
type LayoutRepository interface {
	ListWingCoordinates(ctx context.Context, hotelID string) ([]*domain.WingCoordinate, error)
}

// PatternsRepository 历史同组清扫Repository接口
type PatternsRepository interface {
	// ListPairCounts 当前酒店全部房号对次数（构建亲和索引用）
	ListPairCounts(ctx context.Context, hotelID string) ([]*domain.RoomPairCount, error)
	// IncrementPairCounts 确认分配后累加同组房号对（upsert）
	IncrementPairCounts(ctx context.Context, hotelID string, pairs []*domain.RoomPairCount) error
}
