package httpapi

import (
	"net/http"
	"strconv"

	"roomops-data/internal/assign"
	"roomops-data/internal/domain"
	"roomops-data/internal/repository"

	"go.uber.org/zap"
)

// AdminHandler 后台只读 Handler（房间/员工管理页）
type AdminHandler struct {
	roomsRepo repository.RoomsRepository
	staffRepo repository.StaffRepository
	logger    *zap.Logger
}

func NewAdminHandler(roomsRepo repository.RoomsRepository, staffRepo repository.StaffRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		roomsRepo: roomsRepo,
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// roomDTO 管理页房间视图；floor 与 weight 为派生字段
type roomDTO struct {
	RoomID              string  `json:"room_id"`
	RoomNumber          string  `json:"room_number"`
	Floor               int     `json:"floor"`
	Wing                string  `json:"wing,omitempty"`
	RoomSizeSqm         float64 `json:"room_size_sqm,omitempty"`
	RoomCategory        string  `json:"room_category,omitempty"`
	Status              string  `json:"status"`
	IsCheckoutRoom      bool    `json:"is_checkout_room"`
	TowelChangeRequired bool    `json:"towel_change_required"`
	LinenChangeRequired bool    `json:"linen_change_required"`
	WeightMinutes       int     `json:"weight_minutes"`
}

func toRoomDTO(room *domain.Room) roomDTO {
	dto := roomDTO{
		RoomID:              room.RoomID,
		RoomNumber:          room.RoomNumber,
		Floor:               assign.RoomFloor(room),
		Status:              room.Status,
		IsCheckoutRoom:      room.IsCheckoutRoom,
		TowelChangeRequired: room.TowelChangeRequired,
		LinenChangeRequired: room.LinenChangeRequired,
		WeightMinutes:       assign.Weight(room),
	}
	if room.Wing.Valid {
		dto.Wing = room.Wing.String
	}
	if room.RoomSizeSqm.Valid {
		dto.RoomSizeSqm = room.RoomSizeSqm.Float64
	}
	if room.RoomCategory.Valid {
		dto.RoomCategory = room.RoomCategory.String
	}
	return dto
}

// ListRooms GET /admin/api/v1/rooms?hotel_id=...&status=...&wing=...&floor=...&search=...
func (h *AdminHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	hotelID := q.Get("hotel_id")
	if hotelID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id is required"))
		return
	}

	filters := repository.RoomFilters{
		Status: q.Get("status"),
		Wing:   q.Get("wing"),
		Search: q.Get("search"),
	}
	if fs := q.Get("floor"); fs != "" {
		floor, err := strconv.Atoi(fs)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("floor must be an integer"))
			return
		}
		filters.FloorNumber = &floor
	}

	rooms, err := h.roomsRepo.ListRooms(ctx, hotelID, filters)
	if err != nil {
		h.logger.Error("failed to list rooms", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list rooms"))
		return
	}

	items := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, toRoomDTO(room))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": len(items),
	}))
}

// UpdateRoomsStatus POST /admin/api/v1/rooms/status
// 领班验收用：批量把房间置为 clean / inspected / out_of_order
func (h *AdminHandler) UpdateRoomsStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		HotelID string   `json:"hotel_id"`
		RoomIDs []string `json:"room_ids"`
		Status  string   `json:"status"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if body.HotelID == "" || len(body.RoomIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id and room_ids are required"))
		return
	}
	switch body.Status {
	case domain.RoomStatusDirty, domain.RoomStatusClean, domain.RoomStatusInspected, domain.RoomStatusOutOfOrder:
	default:
		writeJSON(w, http.StatusBadRequest, Fail("invalid status"))
		return
	}

	if err := h.roomsRepo.SetRoomsStatus(ctx, body.HotelID, body.RoomIDs, body.Status); err != nil {
		h.logger.Error("failed to update room statuses", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to update room statuses"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]int{"updated": len(body.RoomIDs)}))
}

// staffDTO 管理页员工视图
type staffDTO struct {
	StaffID     string `json:"staff_id"`
	FullName    string `json:"full_name"`
	Nickname    string `json:"nickname,omitempty"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
}

// ListStaff GET /admin/api/v1/staff?hotel_id=...
func (h *AdminHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotelID := r.URL.Query().Get("hotel_id")
	if hotelID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id is required"))
		return
	}

	staff, err := h.staffRepo.ListActiveStaff(ctx, hotelID)
	if err != nil {
		h.logger.Error("failed to list staff", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list staff"))
		return
	}

	items := make([]staffDTO, 0, len(staff))
	for _, s := range staff {
		dto := staffDTO{
			StaffID:     s.StaffID,
			FullName:    s.FullName,
			DisplayName: s.DisplayName(),
			Status:      s.Status,
		}
		if s.Nickname.Valid {
			dto.Nickname = s.Nickname.String
		}
		items = append(items, dto)
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": len(items),
	}))
}
