package ledger

import (
	"errors"
	"fmt"
)

// ErrInvalidSetting is returned when a settings patch carries a negative cost
// or a recycling rate outside [0, 1].
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds the configurable cost and consumption parameters of the
// solvent ledger. All costs are per-unit monetary amounts; LitersPerSquareMeter
// converts processed plate area into solvent volume.
type Settings struct {
	CostPerBarrel          float64
	RecyclingCostPerBarrel float64
	CostPerSquareMeter     float64
	LitersPerSquareMeter   float64
	RecyclingRate          float64
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	CostPerBarrel          *float64
	RecyclingCostPerBarrel *float64
	CostPerSquareMeter     *float64
	LitersPerSquareMeter   *float64
	RecyclingRate          *float64
}

// Validate checks every field of the settings.
// Costs and consumption rates must be non-negative; the recycling rate must
// lie within [0, 1].
func (s Settings) Validate() error {
	if s.CostPerBarrel < 0 {
		return fmt.Errorf("%w: costPerBarrel %v is negative", ErrInvalidSetting, s.CostPerBarrel)
	}
	if s.RecyclingCostPerBarrel < 0 {
		return fmt.Errorf("%w: recyclingCostPerBarrel %v is negative", ErrInvalidSetting, s.RecyclingCostPerBarrel)
	}
	if s.CostPerSquareMeter < 0 {
		return fmt.Errorf("%w: costPerSquareMeter %v is negative", ErrInvalidSetting, s.CostPerSquareMeter)
	}
	if s.LitersPerSquareMeter < 0 {
		return fmt.Errorf("%w: litersPerSquareMeter %v is negative", ErrInvalidSetting, s.LitersPerSquareMeter)
	}
	if s.RecyclingRate < 0 || s.RecyclingRate > 1 {
		return fmt.Errorf("%w: recyclingRate %v is outside [0, 1]", ErrInvalidSetting, s.RecyclingRate)
	}
	return nil
}

// Merge applies a patch and returns the merged settings after validation.
// The receiver is not modified; on error the original settings stay in effect.
func (s Settings) Merge(patch SettingsPatch) (Settings, error) {
	merged := s

	if patch.CostPerBarrel != nil {
		merged.CostPerBarrel = *patch.CostPerBarrel
	}
	if patch.RecyclingCostPerBarrel != nil {
		merged.RecyclingCostPerBarrel = *patch.RecyclingCostPerBarrel
	}
	if patch.CostPerSquareMeter != nil {
		merged.CostPerSquareMeter = *patch.CostPerSquareMeter
	}
	if patch.LitersPerSquareMeter != nil {
		merged.LitersPerSquareMeter = *patch.LitersPerSquareMeter
	}
	if patch.RecyclingRate != nil {
		merged.RecyclingRate = *patch.RecyclingRate
	}

	if err := merged.Validate(); err != nil {
		return Settings{}, err
	}
	return merged, nil
}

// LitersForArea converts a processed area into solvent volume.
func (s Settings) LitersForArea(areaM2 float64) float64 {
	return areaM2 * s.LitersPerSquareMeter
}

// CostForArea computes the processing cost of an area.
func (s Settings) CostForArea(areaM2 float64) float64 {
	return areaM2 * s.CostPerSquareMeter
}
