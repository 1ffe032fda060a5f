package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"roomops-data/internal/repository"

	"github.com/xuri/excelize/v2"

	"go.uber.org/zap"
)

// DaySheetHeader 当日清扫清单表头
var DaySheetHeader = []string{
	"Staff",
	"Priority",
	"Room",
	"Wing",
	"Cleaning Type",
}

// ExportDaySheet GET /hk/api/v1/assignments/export?hotel_id=...&date=...
// 导出已确认分配的当日清单 Excel，供打印发给清扫员。
func (h *AssignmentHandler) ExportDaySheet(w http.ResponseWriter, r *http.Request) {
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
	if h.assignmentsRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Fail("assignment storage is not configured"))
		return
	}

	rows, err := h.assignmentsRepo.ListDaySheet(ctx, hotelID, date)
	if err != nil {
		h.logger.Error("failed to load day sheet", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load day sheet"))
		return
	}
	if len(rows) == 0 {
		writeJSON(w, http.StatusNotFound, Fail("no confirmed assignments for this date"))
		return
	}

	data, err := GenerateDaySheetExcel(rows)
	if err != nil {
		h.logger.Error("failed to generate day sheet excel", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate day sheet"))
		return
	}

	filename := fmt.Sprintf("day_sheet_%s.xlsx", date.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GenerateDaySheetExcel 生成当日清扫清单 Excel 文件
// rows 已按员工、priority 排序（见 AssignmentsRepository.ListDaySheet）
func GenerateDaySheetExcel(rows []*repository.DaySheetRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows to export")
	}

	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Day Sheet"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range DaySheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 设置列宽
	columnWidths := []float64{
		24, // Staff
		10, // Priority
		12, // Room
		14, // Wing
		16, // Cleaning Type
	}
	for i := range DaySheetHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// 写入数据，员工名只在其第一行出现，方便按人裁切
	prevStaff := ""
	for rowIdx, item := range rows {
		row := rowIdx + 2 // 从第2行开始（第1行是表头）

		staffName := item.StaffName
		if item.StaffID == prevStaff {
			staffName = ""
		} else {
			prevStaff = item.StaffID
		}

		values := []any{
			staffName,
			item.Priority,
			item.RoomNumber,
			item.Wing,
			cleaningTypeLabel(item.AssignmentType),
		}
		for colIdx, value := range values {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, colIdx+1, err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

func cleaningTypeLabel(assignmentType string) string {
	switch assignmentType {
	case "checkout":
		return "Checkout"
	case "daily":
		return "Daily"
	default:
		return assignmentType
	}
}
