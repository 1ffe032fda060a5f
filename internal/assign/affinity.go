package assign

import (
	"roomops-data/internal/domain"
)

// pairKey 无序房号对（A < B）
type pairKey struct {
	A string
	B string
}

func makePairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

// RoomAffinityMap 房号对 -> 历史同组清扫次数。
// 软性参考：用于在负载相近的组之间保持员工对房间簇的熟悉度。
type RoomAffinityMap map[pairKey]int

// BuildAffinityMap 从历史记录构建亲和索引；同一对出现多行时累加
func BuildAffinityMap(rows []*domain.RoomPairCount) RoomAffinityMap {
	m := make(RoomAffinityMap, len(rows))
	for _, r := range rows {
		if r.PairCount <= 0 {
			continue
		}
		m[makePairKey(r.RoomNumberA, r.RoomNumberB)] += r.PairCount
	}
	return m
}

// Count 两个房号的同组次数；顺序无关，nil 索引返回 0
func (m RoomAffinityMap) Count(a, b string) int {
	if m == nil {
		return 0
	}
	return m[makePairKey(a, b)]
}
