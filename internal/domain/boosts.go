package domain

const (
	MinBoost = 0.75
	MaxBoost = 1.4
)

// BoostTable maps categories to destination multipliers. Missing entries are 1.0.
type BoostTable map[Category]float64

func (b BoostTable) Get(c Category) float64 {
	if v, ok := b[c]; ok {
		return v
	}
	return 1.0
}

func (b BoostTable) Clone() BoostTable {
	out := make(BoostTable, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func ClampBoost(v float64) float64 {
	return max(MinBoost, min(MaxBoost, v))
}
