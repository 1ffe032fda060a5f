package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"
)

type PostgresPatternsRepository struct {
	db *sql.DB
}

func NewPostgresPatternsRepository(db *sql.DB) *PostgresPatternsRepository {
	return &PostgresPatternsRepository{db: db}
}

func (r *PostgresPatternsRepository) ListPairCounts(ctx context.Context, hotelID string) ([]*domain.RoomPairCount, error) {
	if hotelID == "" {
		return []*domain.RoomPairCount{}, nil
	}
	q := `
		SELECT hotel_id::text, room_number_a, room_number_b, pair_count
		FROM room_pair_counts
		WHERE hotel_id = $1 AND pair_count > 0
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.RoomPairCount{}
	for rows.Next() {
		var p domain.RoomPairCount
		if err := rows.Scan(&p.HotelID, &p.RoomNumberA, &p.RoomNumberB, &p.PairCount); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// IncrementPairCounts 入库前规范化无序对（room_number_a < room_number_b）
// 替代触发器：ON CONFLICT 累加
func (r *PostgresPatternsRepository) IncrementPairCounts(ctx context.Context, hotelID string, pairs []*domain.RoomPairCount) error {
	if hotelID == "" {
		return fmt.Errorf("hotel_id is required")
	}
	if len(pairs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := `
		INSERT INTO room_pair_counts (hotel_id, room_number_a, room_number_b, pair_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hotel_id, room_number_a, room_number_b)
		DO UPDATE SET pair_count = room_pair_counts.pair_count + EXCLUDED.pair_count
	`
	for _, p := range pairs {
		a, b := p.RoomNumberA, p.RoomNumberB
		if a > b {
			a, b = b, a
		}
		count := p.PairCount
		if count <= 0 {
			count = 1
		}
		if _, err := tx.ExecContext(ctx, q, hotelID, a, b, count); err != nil {
			return err
		}
	}
	return tx.Commit()
}
