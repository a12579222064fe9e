// Package economy derives purchase cost and per-second income from a
// region's area and rarity multiplier.
package economy

import "math"

// Config holds the global economy scalars.
type Config struct {
	BaseCostUnit   float64 `toml:"base_cost_unit" json:"base_cost_unit"`
	BaseIncomeUnit float64 `toml:"base_income_unit" json:"base_income_unit"`
}

// DefaultConfig returns the original game balance.
func DefaultConfig() Config {
	return Config{
		BaseCostUnit:   50,
		BaseIncomeUnit: 5,
	}
}

// Calculator handles pure cost and income calculation.
type Calculator struct {
	config Config
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(config Config) *Calculator {
	return &Calculator{config: config}
}

// SizeMetric dampens raw area sub-linearly so giant regions do not dominate
// the economy linearly. Always at least 1 so zero-area regions still price.
func (c *Calculator) SizeMetric(area float64) float64 {
	return math.Max(1, math.Pow(area, 0.6))
}

// Cost returns the fixed purchase price for a region.
func (c *Calculator) Cost(area, multiplier float64) int64 {
	return int64(math.Floor(c.SizeMetric(area) * c.config.BaseCostUnit * multiplier))
}

// Income returns the fixed per-second yield for an owned region.
func (c *Calculator) Income(area, multiplier float64) int64 {
	return int64(math.Floor(c.SizeMetric(area) * c.config.BaseIncomeUnit * multiplier))
}
