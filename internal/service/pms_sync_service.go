package service

import (
	"context"
	"fmt"
	"time"

	"roomops-data/internal/domain"
	"roomops-data/internal/repository"

	"go.uber.org/zap"
)

// PMSSyncService 把 PMS 房态同步进 rooms 表
// 规则：当日退房 → checkout + 换床品；在住 → daily；空置保持原状不置脏
type PMSSyncService struct {
	client    *PMSClient
	roomsRepo repository.RoomsRepository
	logger    *zap.Logger
}

func NewPMSSyncService(client *PMSClient, roomsRepo repository.RoomsRepository, logger *zap.Logger) *PMSSyncService {
	return &PMSSyncService{client: client, roomsRepo: roomsRepo, logger: logger}
}

// SyncRoomStatuses 返回更新的房间数
func (s *PMSSyncService) SyncRoomStatuses(ctx context.Context, hotelID string, date time.Time) (int, error) {
	statuses, err := s.client.FetchRoomStatuses(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch PMS statuses: %w", err)
	}

	updated := 0
	for _, st := range statuses {
		if !st.Occupied && !st.Departure {
			continue
		}
		upd := repository.RoomStatusUpdate{
			Status:              domain.RoomStatusDirty,
			IsCheckoutRoom:      st.Departure,
			TowelChangeRequired: st.TowelChange,
			// 退房房一律换床品
			LinenChangeRequired: st.LinenChange || st.Departure,
		}
		if err := s.roomsRepo.UpsertRoomStatus(ctx, hotelID, st.RoomNumber, upd); err != nil {
			// 单间失败不中断整批同步
			s.logger.Warn("failed to sync room status",
				zap.String("hotel_id", hotelID),
				zap.String("room_number", st.RoomNumber),
				zap.Error(err))
			continue
		}
		updated++
	}

	s.logger.Info("PMS room statuses synced",
		zap.String("hotel_id", hotelID),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("fetched", len(statuses)),
		zap.Int("updated", updated),
	)
	return updated, nil
}
