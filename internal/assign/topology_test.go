package assign

import (
	"database/sql"
	"testing"

	"roomops-data/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestFloorOf_ExplicitWins(t *testing.T) {
	require.Equal(t, 7, FloorOf("305", sql.NullInt64{Int64: 7, Valid: true}))
}

func TestFloorOf_DerivedFromRoomNumber(t *testing.T) {
	cases := []struct {
		roomNumber string
		want       int
	}{
		{"305", 3},
		{"1203", 12},
		{"A305", 3},
		{"101-B", 1},
		{"12", 0},   // 1-2位视为底层
		{"7", 0},
		{"LOBBY", 0}, // 无数字
		{"", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, FloorOf(c.roomNumber, sql.NullInt64{}), "room %q", c.roomNumber)
	}
}

func TestNumericPart(t *testing.T) {
	require.Equal(t, 305, NumericPart("A305"))
	require.Equal(t, 1203, NumericPart("1203"))
	require.Equal(t, 0, NumericPart("WEST"))
}

func TestWingProximityMap_Distance(t *testing.T) {
	m := BuildWingProximityMap([]*domain.WingCoordinate{
		{HotelID: "h1", FloorNumber: 3, Wing: "East", X: 0, Y: 0},
		{HotelID: "h1", FloorNumber: 3, Wing: "West", X: 3, Y: 4},
	})

	d, ok := m.Distance(3, "East", 3, "West")
	require.True(t, ok)
	require.InDelta(t, 5.0, d, 1e-9)

	// 同一翼区距离为 0
	d, ok = m.Distance(3, "East", 3, "East")
	require.True(t, ok)
	require.Zero(t, d)
}

func TestWingProximityMap_MissingWingDegrades(t *testing.T) {
	m := BuildWingProximityMap([]*domain.WingCoordinate{
		{HotelID: "h1", FloorNumber: 3, Wing: "East", X: 0, Y: 0},
	})

	_, ok := m.Distance(3, "East", 3, "North")
	require.False(t, ok)

	// nil 索引同样降级
	var nilMap WingProximityMap
	_, ok = nilMap.Distance(1, "A", 1, "B")
	require.False(t, ok)
}
