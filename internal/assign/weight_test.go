package assign

import (
	"database/sql"
	"testing"

	"roomops-data/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestWeight_CheckoutBase(t *testing.T) {
	room := &domain.Room{RoomID: "r1", RoomNumber: "101", IsCheckoutRoom: true}
	require.Equal(t, CheckoutMinutes, Weight(room))
}

func TestWeight_DailyBase(t *testing.T) {
	room := &domain.Room{RoomID: "r1", RoomNumber: "101", IsCheckoutRoom: false}
	require.Equal(t, DailyMinutes, Weight(room))
}

func TestWeight_Surcharges(t *testing.T) {
	room := &domain.Room{
		RoomID:              "r1",
		RoomNumber:          "101",
		IsCheckoutRoom:      true,
		TowelChangeRequired: true,
		LinenChangeRequired: true,
	}
	require.Equal(t, CheckoutMinutes+TowelChangeMinutes+LinenChangeMinutes, Weight(room))
}

func TestWeight_LargeRoomSurcharge(t *testing.T) {
	small := &domain.Room{
		RoomID:      "r1",
		RoomNumber:  "101",
		RoomSizeSqm: sql.NullFloat64{Float64: LargeRoomThresholdSqm, Valid: true},
	}
	// 等于阈值不加价
	require.Equal(t, DailyMinutes, Weight(small))

	large := &domain.Room{
		RoomID:      "r2",
		RoomNumber:  "102",
		RoomSizeSqm: sql.NullFloat64{Float64: LargeRoomThresholdSqm + 1, Valid: true},
	}
	require.Equal(t, DailyMinutes+LargeRoomMinutes, Weight(large))
}

func TestWeight_Deterministic(t *testing.T) {
	room := &domain.Room{
		RoomID:              "r1",
		RoomNumber:          "305",
		IsCheckoutRoom:      true,
		LinenChangeRequired: true,
		RoomSizeSqm:         sql.NullFloat64{Float64: 55, Valid: true},
	}
	first := Weight(room)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Weight(room))
	}
}
