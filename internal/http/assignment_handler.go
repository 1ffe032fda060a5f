package httpapi

import (
	"errors"
	"net/http"

	"roomops-data/internal/assign"
	"roomops-data/internal/repository"
	"roomops-data/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// AssignmentHandler 清扫分配 Handler（预览/移动/确认/导出）
type AssignmentHandler struct {
	assignmentService service.AssignmentService
	assignmentsRepo   repository.AssignmentsRepository
	pmsSync           *service.PMSSyncService // 可为 nil（PMS 未配置）
	logger            *zap.Logger
}

// NewAssignmentHandler 创建分配 Handler
func NewAssignmentHandler(
	assignmentService service.AssignmentService,
	assignmentsRepo repository.AssignmentsRepository,
	pmsSync *service.PMSSyncService,
	logger *zap.Logger,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		assignmentsRepo:   assignmentsRepo,
		pmsSync:           pmsSync,
		logger:            logger,
	}
}

// GeneratePreview POST /hk/api/v1/assignments/preview
func (h *AssignmentHandler) GeneratePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		HotelID  string   `json:"hotel_id"`
		Date     string   `json:"date"`
		StaffIDs []string `json:"staff_ids"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if body.HotelID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id is required"))
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid date, expected YYYY-MM-DD"))
		return
	}

	resp, err := h.assignmentService.GeneratePreview(ctx, service.GeneratePreviewRequest{
		HotelID:  body.HotelID,
		Date:     date,
		StaffIDs: body.StaffIDs,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyRoster) {
			writeJSON(w, http.StatusBadRequest, Fail("select at least one staff member"))
			return
		}
		h.logger.Error("failed to generate preview", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate preview"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// MoveRoom POST /hk/api/v1/assignments/move
func (h *AssignmentHandler) MoveRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		HotelID string `json:"hotel_id"`
		Date    string `json:"date"`
		assign.MoveRoomCommand
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if body.HotelID == "" || body.RoomID == "" || body.FromStaffID == "" || body.ToStaffID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id, room_id, from_staff_id and to_staff_id are required"))
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid date, expected YYYY-MM-DD"))
		return
	}

	resp, err := h.assignmentService.MoveRoom(ctx, service.MoveRoomRequest{
		HotelID:     body.HotelID,
		Date:        date,
		RoomID:      body.RoomID,
		FromStaffID: body.FromStaffID,
		ToStaffID:   body.ToStaffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDraft):
			writeJSON(w, http.StatusNotFound, Fail("no preview draft for this date"))
		case errors.Is(err, assign.ErrRoomNotInBin):
			writeJSON(w, http.StatusConflict, Fail("room is not in the source staff's list"))
		case errors.Is(err, assign.ErrBinNotFound):
			writeJSON(w, http.StatusNotFound, Fail("staff member is not part of this preview"))
		default:
			h.logger.Error("failed to move room", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to move room"))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetDraft GET /hk/api/v1/assignments/draft?hotel_id=...&date=...
func (h *AssignmentHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotelID := r.URL.Query().Get("hotel_id")
	if hotelID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id is required"))
		return
	}
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid date, expected YYYY-MM-DD"))
		return
	}

	resp, err := h.assignmentService.GetDraft(ctx, hotelID, date)
	if err != nil {
		if errors.Is(err, service.ErrNoDraft) {
			writeJSON(w, http.StatusNotFound, Fail("no preview draft for this date"))
			return
		}
		h.logger.Error("failed to load draft", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load draft"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Confirm POST /hk/api/v1/assignments/confirm
func (h *AssignmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		HotelID string `json:"hotel_id"`
		Date    string `json:"date"`
		Force   bool   `json:"force"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if body.HotelID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id is required"))
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid date, expected YYYY-MM-DD"))
		return
	}

	resp, err := h.assignmentService.Confirm(ctx, service.ConfirmRequest{
		HotelID: body.HotelID,
		Date:    date,
		Force:   body.Force,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDraft):
			writeJSON(w, http.StatusNotFound, Fail("no preview draft for this date"))
		case errors.Is(err, service.ErrShiftExceeded):
			// 超班需要用户显式确认后重发 force=true
			writeJSON(w, http.StatusConflict, Warn("some staff exceed shift time, resend with force=true to confirm"))
		default:
			h.logger.Error("failed to confirm assignments", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to confirm assignments"))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// SyncPMS POST /hk/api/v1/pms/sync
func (h *AssignmentHandler) SyncPMS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.pmsSync == nil {
		writeJSON(w, http.StatusServiceUnavailable, Fail("PMS sync is not configured"))
		return
	}

	var body struct {
		HotelID string `json:"hotel_id"`
		Date    string `json:"date"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if body.HotelID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("hotel_id is required"))
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid date, expected YYYY-MM-DD"))
		return
	}

	updated, err := h.pmsSync.SyncRoomStatuses(ctx, body.HotelID, date)
	if err != nil {
		h.logger.Error("PMS sync failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("PMS sync failed"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]int{"updated": updated}))
}
