package domain

// WingCoordinate 楼层翼区坐标（对应 hotel_wing_layout 表）
// 每个酒店一套；用于估算翼区之间的步行距离
type WingCoordinate struct {
	HotelID     string  `db:"hotel_id"`
	FloorNumber int     `db:"floor_number"`
	Wing        string  `db:"wing"`
	X           float64 `db:"x"`
	Y           float64 `db:"y"`
}
