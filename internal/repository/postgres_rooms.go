package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"

	"github.com/lib/pq"
)

type PostgresRoomsRepository struct {
	db *sql.DB
}

func NewPostgresRoomsRepository(db *sql.DB) *PostgresRoomsRepository {
	return &PostgresRoomsRepository{db: db}
}

const roomColumns = `
	room_id::text,
	hotel_id::text,
	room_number,
	floor_number,
	wing,
	room_size_sqm,
	room_capacity,
	is_checkout_room,
	status,
	towel_change_required,
	linen_change_required,
	room_category
`

func scanRoom(rows interface{ Scan(...any) error }) (*domain.Room, error) {
	var r domain.Room
	if err := rows.Scan(
		&r.RoomID,
		&r.HotelID,
		&r.RoomNumber,
		&r.FloorNumber,
		&r.Wing,
		&r.RoomSizeSqm,
		&r.RoomCapacity,
		&r.IsCheckoutRoom,
		&r.Status,
		&r.TowelChangeRequired,
		&r.LinenChangeRequired,
		&r.RoomCategory,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListCleaningQueue 当日待清扫队列
// SQL 只做粗排（楼层 + 房号字典序，"1203" 会排在 "305" 前）；
// 数字化的步行顺序由求解器统一重排，这里不保证
func (r *PostgresRoomsRepository) ListCleaningQueue(ctx context.Context, hotelID string) ([]*domain.Room, error) {
	if hotelID == "" {
		return []*domain.Room{}, nil
	}
	q := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE hotel_id = $1
		  AND status = 'dirty'
		ORDER BY COALESCE(floor_number, 0), room_number
	`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *PostgresRoomsRepository) ListRooms(ctx context.Context, hotelID string, filters RoomFilters) ([]*domain.Room, error) {
	if hotelID == "" {
		return []*domain.Room{}, nil
	}

	where := "hotel_id = $1"
	args := []any{hotelID}
	argIdx := 2
	if filters.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filters.Status)
		argIdx++
	}
	if filters.Wing != "" {
		where += fmt.Sprintf(" AND wing = $%d", argIdx)
		args = append(args, filters.Wing)
		argIdx++
	}
	if filters.FloorNumber != nil {
		where += fmt.Sprintf(" AND floor_number = $%d", argIdx)
		args = append(args, *filters.FloorNumber)
		argIdx++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(" AND room_number ILIKE $%d", argIdx)
		args = append(args, "%"+filters.Search+"%")
		argIdx++
	}

	q := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE ` + where + `
		ORDER BY COALESCE(floor_number, 0), room_number
	`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *PostgresRoomsRepository) GetRoom(ctx context.Context, hotelID, roomID string) (*domain.Room, error) {
	if hotelID == "" || roomID == "" {
		return nil, fmt.Errorf("hotel_id and room_id are required")
	}
	q := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE hotel_id = $1 AND room_id = $2
	`
	return scanRoom(r.db.QueryRowContext(ctx, q, hotelID, roomID))
}

// UpsertRoomStatus PMS 同步：按房号更新；房间不存在时忽略（PMS 可能带未录入的房号）
func (r *PostgresRoomsRepository) UpsertRoomStatus(ctx context.Context, hotelID, roomNumber string, upd RoomStatusUpdate) error {
	if hotelID == "" || roomNumber == "" {
		return fmt.Errorf("hotel_id and room_number are required")
	}
	q := `
		UPDATE rooms
		SET status = $3,
		    is_checkout_room = $4,
		    towel_change_required = $5,
		    linen_change_required = $6
		WHERE hotel_id = $1 AND room_number = $2
	`
	_, err := r.db.ExecContext(ctx, q, hotelID, roomNumber,
		upd.Status, upd.IsCheckoutRoom, upd.TowelChangeRequired, upd.LinenChangeRequired)
	return err
}

func (r *PostgresRoomsRepository) SetRoomsStatus(ctx context.Context, hotelID string, roomIDs []string, status string) error {
	if hotelID == "" || len(roomIDs) == 0 {
		return nil
	}
	q := `
		UPDATE rooms
		SET status = $3
		WHERE hotel_id = $1 AND room_id = ANY($2)
	`
	_, err := r.db.ExecContext(ctx, q, hotelID, pq.Array(roomIDs), status)
	return err
}
