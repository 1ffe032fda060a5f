package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roomops-data/internal/assign"
	"roomops-data/internal/domain"
	"roomops-data/internal/repository"
	"roomops-data/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyRoster 未勾选员工就生成预览；引擎前置条件由这里拦截
	ErrEmptyRoster = errors.New("select at least one staff member")
	// ErrNoDraft 当日没有进行中的预览草稿
	ErrNoDraft = errors.New("no preview draft for this date")
	// ErrShiftExceeded 存在超班组且未携带 force 确认
	ErrShiftExceeded = errors.New("assignment exceeds shift time, explicit confirmation required")
)

// 草稿保留 24 小时：跨日的预览没有意义
const draftTTL = 24 * time.Hour

// AssignmentService 清扫分配服务接口
type AssignmentService interface {
	// GeneratePreview 生成当日分配预览并保存草稿
	GeneratePreview(ctx context.Context, req GeneratePreviewRequest) (*PreviewResponse, error)
	// MoveRoom 在草稿上应用一次手动移动
	MoveRoom(ctx context.Context, req MoveRoomRequest) (*PreviewResponse, error)
	// GetDraft 读取当前草稿
	GetDraft(ctx context.Context, hotelID string, date time.Time) (*PreviewResponse, error)
	// Confirm 持久化草稿为分配记录，并累加历史同组数据
	Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResponse, error)
}

type assignmentService struct {
	roomsRepo       repository.RoomsRepository
	staffRepo       repository.StaffRepository
	layoutRepo      repository.LayoutRepository
	patternsRepo    repository.PatternsRepository
	assignmentsRepo repository.AssignmentsRepository
	drafts          store.KV
	logger          *zap.Logger
}

func NewAssignmentService(
	roomsRepo repository.RoomsRepository,
	staffRepo repository.StaffRepository,
	layoutRepo repository.LayoutRepository,
	patternsRepo repository.PatternsRepository,
	assignmentsRepo repository.AssignmentsRepository,
	drafts store.KV,
	logger *zap.Logger,
) AssignmentService {
	return &assignmentService{
		roomsRepo:       roomsRepo,
		staffRepo:       staffRepo,
		layoutRepo:      layoutRepo,
		patternsRepo:    patternsRepo,
		assignmentsRepo: assignmentsRepo,
		drafts:          drafts,
		logger:          logger,
	}
}

// GeneratePreviewRequest 生成预览请求
type GeneratePreviewRequest struct {
	HotelID  string
	Date     time.Time
	StaffIDs []string
}

// MoveRoomRequest 手动移动请求
type MoveRoomRequest struct {
	HotelID     string
	Date        time.Time
	RoomID      string
	FromStaffID string
	ToStaffID   string
}

// ConfirmRequest 确认请求；Force=true 时允许超班组入库
type ConfirmRequest struct {
	HotelID string
	Date    time.Time
	Force   bool
}

// PreviewResponse 预览响应；Bins 为 JSON 视图（领域模型不直接上线）
type PreviewResponse struct {
	HotelID string     `json:"hotel_id"`
	Date    string     `json:"date"`
	Bins    []*BinView `json:"bins"`
}

// ConfirmResponse 确认响应
type ConfirmResponse struct {
	SavedRooms    int  `json:"saved_rooms"`
	StaffCount    int  `json:"staff_count"`
	OverageAlerts int  `json:"overage_alerts"`
	Forced        bool `json:"forced"`
}

func (s *assignmentService) GeneratePreview(ctx context.Context, req GeneratePreviewRequest) (*PreviewResponse, error) {
	if len(req.StaffIDs) == 0 {
		return nil, ErrEmptyRoster
	}

	rooms, err := s.roomsRepo.ListCleaningQueue(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cleaning queue: %w", err)
	}
	staff, err := s.staffRepo.ListStaffByIDs(ctx, req.HotelID, req.StaffIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	if len(staff) == 0 {
		return nil, ErrEmptyRoster
	}

	// 布局与历史数据都是可选的：取不到就退化为纯负载均衡，不阻塞预览
	var prox assign.WingProximityMap
	if layout, err := s.layoutRepo.ListWingCoordinates(ctx, req.HotelID); err != nil {
		s.logger.Warn("wing layout unavailable, proximity bonus disabled",
			zap.String("hotel_id", req.HotelID), zap.Error(err))
	} else if len(layout) > 0 {
		prox = assign.BuildWingProximityMap(layout)
	}

	var affinity assign.RoomAffinityMap
	if pairs, err := s.patternsRepo.ListPairCounts(ctx, req.HotelID); err != nil {
		s.logger.Warn("pair history unavailable, affinity bonus disabled",
			zap.String("hotel_id", req.HotelID), zap.Error(err))
	} else if len(pairs) > 0 {
		affinity = assign.BuildAffinityMap(pairs)
	}

	bins := assign.AutoAssignRooms(rooms, staff, prox, affinity)

	resp := &PreviewResponse{
		HotelID: req.HotelID,
		Date:    req.Date.Format("2006-01-02"),
		Bins:    toBinViews(bins),
	}
	s.saveDraft(ctx, req.HotelID, req.Date, resp)

	s.logger.Info("assignment preview generated",
		zap.String("hotel_id", req.HotelID),
		zap.String("date", resp.Date),
		zap.Int("rooms", len(rooms)),
		zap.Int("staff", len(staff)),
	)
	return resp, nil
}

func (s *assignmentService) MoveRoom(ctx context.Context, req MoveRoomRequest) (*PreviewResponse, error) {
	draft, err := s.loadDraft(ctx, req.HotelID, req.Date)
	if err != nil {
		return nil, err
	}

	moved, err := assign.MoveRoom(toEngineBins(draft.Bins), req.RoomID, req.FromStaffID, req.ToStaffID)
	if err != nil {
		// 草稿原样保留，调用方提示失败即可
		return nil, err
	}
	draft.Bins = toBinViews(moved)
	s.saveDraft(ctx, req.HotelID, req.Date, draft)
	return draft, nil
}

func (s *assignmentService) GetDraft(ctx context.Context, hotelID string, date time.Time) (*PreviewResponse, error) {
	return s.loadDraft(ctx, hotelID, date)
}

func (s *assignmentService) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResponse, error) {
	draft, err := s.loadDraft(ctx, req.HotelID, req.Date)
	if err != nil {
		return nil, err
	}

	overages := 0
	for _, b := range draft.Bins {
		if b.ExceedsShift {
			overages++
		}
	}
	if overages > 0 && !req.Force {
		return nil, ErrShiftExceeded
	}

	records := buildAssignmentRecords(req.HotelID, req.Date, draft.Bins)
	if err := s.assignmentsRepo.ReplaceForDate(ctx, req.HotelID, req.Date, records); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}

	// 历史同组数据喂给明天的亲和索引；失败只告警，不回滚当日分配
	if err := s.patternsRepo.IncrementPairCounts(ctx, req.HotelID, binPairCounts(req.HotelID, draft.Bins)); err != nil {
		s.logger.Warn("failed to update pair history", zap.String("hotel_id", req.HotelID), zap.Error(err))
	}

	s.clearDraft(ctx, req.HotelID, req.Date)

	staffCount := 0
	for _, b := range draft.Bins {
		if len(b.Rooms) > 0 {
			staffCount++
		}
	}
	s.logger.Info("assignment confirmed",
		zap.String("hotel_id", req.HotelID),
		zap.String("date", req.Date.Format("2006-01-02")),
		zap.Int("rooms", len(records)),
		zap.Int("overage_alerts", overages),
	)
	return &ConfirmResponse{
		SavedRooms:    len(records),
		StaffCount:    staffCount,
		OverageAlerts: overages,
		Forced:        req.Force,
	}, nil
}

// buildAssignmentRecords 分组转持久化记录
// priority 按组内顺序编号，checkout 在前（与求解器排队顺序一致）
func buildAssignmentRecords(hotelID string, date time.Time, bins []*BinView) []*domain.AssignmentRecord {
	records := []*domain.AssignmentRecord{}
	for _, b := range bins {
		for i, r := range b.Rooms {
			assignmentType := domain.AssignmentTypeDaily
			if r.IsCheckoutRoom {
				assignmentType = domain.AssignmentTypeCheckout
			}
			records = append(records, &domain.AssignmentRecord{
				AssignmentID:   uuid.NewString(),
				HotelID:        hotelID,
				RoomID:         r.RoomID,
				StaffID:        b.StaffID,
				AssignmentDate: date,
				AssignmentType: assignmentType,
				Priority:       i + 1,
			})
		}
	}
	return records
}

// binPairCounts 每组内的全部无序房号对各计一次
func binPairCounts(hotelID string, bins []*BinView) []*domain.RoomPairCount {
	pairs := []*domain.RoomPairCount{}
	for _, b := range bins {
		for i := 0; i < len(b.Rooms); i++ {
			for j := i + 1; j < len(b.Rooms); j++ {
				pairs = append(pairs, &domain.RoomPairCount{
					HotelID:     hotelID,
					RoomNumberA: b.Rooms[i].RoomNumber,
					RoomNumberB: b.Rooms[j].RoomNumber,
					PairCount:   1,
				})
			}
		}
	}
	return pairs
}

// ---- 草稿存取 ----

func draftKey(hotelID string, date time.Time) string {
	return "housekeeping:draft:" + hotelID + ":" + date.Format("2006-01-02")
}

func (s *assignmentService) saveDraft(ctx context.Context, hotelID string, date time.Time, resp *PreviewResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("failed to marshal draft", zap.Error(err))
		return
	}
	// 草稿丢失可以重新生成预览，写失败不影响本次响应
	if err := s.drafts.Set(ctx, draftKey(hotelID, date), string(data), draftTTL); err != nil {
		s.logger.Warn("failed to save draft", zap.String("hotel_id", hotelID), zap.Error(err))
	}
}

func (s *assignmentService) loadDraft(ctx context.Context, hotelID string, date time.Time) (*PreviewResponse, error) {
	raw, err := s.drafts.Get(ctx, draftKey(hotelID, date))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	var resp PreviewResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &resp, nil
}

func (s *assignmentService) clearDraft(ctx context.Context, hotelID string, date time.Time) {
	if err := s.drafts.Del(ctx, draftKey(hotelID, date)); err != nil {
		s.logger.Warn("failed to clear draft", zap.String("hotel_id", hotelID), zap.Error(err))
	}
}
