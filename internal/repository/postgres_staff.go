package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"

	"github.com/lib/pq"
)

type PostgresStaffRepository struct {
	db *sql.DB
}

func NewPostgresStaffRepository(db *sql.DB) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

func (r *PostgresStaffRepository) ListActiveStaff(ctx context.Context, hotelID string) ([]*domain.Staff, error) {
	if hotelID == "" {
		return []*domain.Staff{}, nil
	}
	q := `
		SELECT staff_id::text, hotel_id::text, full_name, nickname, status
		FROM housekeeping_staff
		WHERE hotel_id = $1 AND status = 'active'
		ORDER BY full_name
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Staff{}
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.StaffID, &s.HotelID, &s.FullName, &s.Nickname, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ListStaffByIDs 结果按入参顺序返回（分组顺序与用户勾选顺序一致）
func (r *PostgresStaffRepository) ListStaffByIDs(ctx context.Context, hotelID string, staffIDs []string) ([]*domain.Staff, error) {
	if hotelID == "" || len(staffIDs) == 0 {
		return []*domain.Staff{}, nil
	}
	q := `
		SELECT staff_id::text, hotel_id::text, full_name, nickname, status
		FROM housekeeping_staff
		WHERE hotel_id = $1 AND staff_id = ANY($2)
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID, pq.Array(staffIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[string]*domain.Staff{}
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.StaffID, &s.HotelID, &s.FullName, &s.Nickname, &s.Status); err != nil {
			return nil, err
		}
		byID[s.StaffID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*domain.Staff, 0, len(staffIDs))
	for _, id := range staffIDs {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *PostgresStaffRepository) GetStaff(ctx context.Context, hotelID, staffID string) (*domain.Staff, error) {
	if hotelID == "" || staffID == "" {
		return nil, fmt.Errorf("hotel_id and staff_id are required")
	}
	q := `
		SELECT staff_id::text, hotel_id::text, full_name, nickname, status
		FROM housekeeping_staff
		WHERE hotel_id = $1 AND staff_id = $2
	`
	var s domain.Staff
	if err := r.db.QueryRowContext(ctx, q, hotelID, staffID).Scan(
		&s.StaffID, &s.HotelID, &s.FullName, &s.Nickname, &s.Status,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
