package domain

// RoomPairCount 历史同组清扫次数（对应 room_pair_counts 表）
// room_number_a < room_number_b（无序对，入库前规范化）
type RoomPairCount struct {
	HotelID     string `db:"hotel_id"`
	RoomNumberA string `db:"room_number_a"`
	RoomNumberB string `db:"room_number_b"`
	PairCount   int    `db:"pair_count"`
}
