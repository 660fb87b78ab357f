package valueobject

import (
	"math"
	"math/rand"
)

// SeedUpperBound は既定のシード値の上限（この値を含まない）です
const SeedUpperBound = 1_000_000

// Seed はカード配置を決定する非負整数の値オブジェクトです
type Seed struct {
	value int64
}

// NewSeed は整数からSeedを生成します
func NewSeed(v int64) (Seed, error) {
	if v < 0 {
		return Seed{}, invalid("seed", CodeInvalidSeed, "seed must be a non-negative integer", map[string]any{"value": v})
	}
	return Seed{value: v}, nil
}

// SeedFromFloat はJSON数値などの浮動小数点からSeedを生成します
// 有限かつ整数かつ非負である必要があります
func SeedFromFloat(v float64) (Seed, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < 0 || v >= math.MaxInt64 {
		return Seed{}, invalid("seed", CodeInvalidSeed, "seed must be a finite non-negative integer", map[string]any{"value": v})
	}
	return NewSeed(int64(v))
}

// RandomSeed は [0, SeedUpperBound) の乱数シードを生成します
func RandomSeed() Seed {
	return Seed{value: rand.Int63n(SeedUpperBound)}
}

// Value は値を返します
func (s Seed) Value() int64 {
	return s.value
}
