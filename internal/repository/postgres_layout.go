package repository

import (
	"context"
	"database/sql"

	"roomops-data/internal/domain"
)

type PostgresLayoutRepository struct {
	db *sql.DB
}

func NewPostgresLayoutRepository(db *sql.DB) *PostgresLayoutRepository {
	return &PostgresLayoutRepository{db: db}
}

// ListWingCoordinates 布局缺失返回空切片（邻近加分随之跳过），不视为错误
func (r *PostgresLayoutRepository) ListWingCoordinates(ctx context.Context, hotelID string) ([]*domain.WingCoordinate, error) {
	if hotelID == "" {
		return []*domain.WingCoordinate{}, nil
	}
	q := `
		SELECT hotel_id::text, floor_number, wing, x, y
		FROM hotel_wing_layout
		WHERE hotel_id = $1
		ORDER BY floor_number, wing
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.WingCoordinate{}
	for rows.Next() {
		var w domain.WingCoordinate
		if err := rows.Scan(&w.HotelID, &w.FloorNumber, &w.Wing, &w.X, &w.Y); err != nil {
			return nil, err
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
