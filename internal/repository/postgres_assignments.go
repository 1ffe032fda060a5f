package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roomops-data/internal/domain"
)

type PostgresAssignmentsRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentsRepository(db *sql.DB) *PostgresAssignmentsRepository {
	return &PostgresAssignmentsRepository{db: db}
}

// ReplaceForDate 先删后插，同一事务；重复确认覆盖当日旧记录
func (r *PostgresAssignmentsRepository) ReplaceForDate(ctx context.Context, hotelID string, date time.Time, records []*domain.AssignmentRecord) error {
	if hotelID == "" {
		return fmt.Errorf("hotel_id is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM housekeeping_assignments WHERE hotel_id = $1 AND assignment_date = $2`,
		hotelID, date.Format("2006-01-02"),
	); err != nil {
		return err
	}

	q := `
		INSERT INTO housekeeping_assignments
			(assignment_id, hotel_id, room_id, staff_id, assignment_date, assignment_type, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, q,
			rec.AssignmentID,
			hotelID,
			rec.RoomID,
			rec.StaffID,
			rec.AssignmentDate.Format("2006-01-02"),
			rec.AssignmentType,
			rec.Priority,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresAssignmentsRepository) ListForDate(ctx context.Context, hotelID string, date time.Time) ([]*domain.AssignmentRecord, error) {
	if hotelID == "" {
		return []*domain.AssignmentRecord{}, nil
	}
	q := `
		SELECT assignment_id::text, hotel_id::text, room_id::text, staff_id::text,
		       assignment_date, assignment_type, priority, created_at
		FROM housekeeping_assignments
		WHERE hotel_id = $1 AND assignment_date = $2
		ORDER BY staff_id, priority
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.AssignmentRecord{}
	for rows.Next() {
		var rec domain.AssignmentRecord
		if err := rows.Scan(
			&rec.AssignmentID, &rec.HotelID, &rec.RoomID, &rec.StaffID,
			&rec.AssignmentDate, &rec.AssignmentType, &rec.Priority, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ListDaySheet 导出清单：JOIN rooms / housekeeping_staff 取展示字段
func (r *PostgresAssignmentsRepository) ListDaySheet(ctx context.Context, hotelID string, date time.Time) ([]*DaySheetRow, error) {
	if hotelID == "" {
		return []*DaySheetRow{}, nil
	}
	q := `
		SELECT a.staff_id::text,
		       s.full_name,
		       r.room_number,
		       COALESCE(r.wing, ''),
		       a.assignment_type,
		       a.priority
		FROM housekeeping_assignments a
		JOIN housekeeping_staff s ON s.staff_id = a.staff_id AND s.hotel_id = a.hotel_id
		JOIN rooms r ON r.room_id = a.room_id AND r.hotel_id = a.hotel_id
		WHERE a.hotel_id = $1 AND a.assignment_date = $2
		ORDER BY s.full_name, a.priority
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*DaySheetRow{}
	for rows.Next() {
		var row DaySheetRow
		if err := rows.Scan(&row.StaffID, &row.StaffName, &row.RoomNumber, &row.Wing, &row.AssignmentType, &row.Priority); err != nil {
			return nil, err
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}
