// Package models defines the domain models for the supply-chain risk service.
// This file contains the five-dimension risk vector and its arithmetic.
package models

import (
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

// RiskVector holds one score per ESG risk dimension, each conceptually in [0,5].
// RiskVector 为每个 ESG 风险维度保存一个分数，取值范围概念上为 [0,5]。
type RiskVector struct {
	Climate       float64 `json:"climate" yaml:"climate"`
	ModernSlavery float64 `json:"modern_slavery" yaml:"modern_slavery"`
	Political     float64 `json:"political" yaml:"political"`
	WaterStress   float64 `json:"water_stress" yaml:"water_stress"`
	NatureLoss    float64 `json:"nature_loss" yaml:"nature_loss"`
}

// UniformRiskVector returns a vector with the same score on every dimension.
func UniformRiskVector(score float64) RiskVector {
	return RiskVector{
		Climate:       score,
		ModernSlavery: score,
		Political:     score,
		WaterStress:   score,
		NatureLoss:    score,
	}
}

// Scale multiplies every dimension by f.
func (r RiskVector) Scale(f float64) RiskVector {
	return RiskVector{
		Climate:       r.Climate * f,
		ModernSlavery: r.ModernSlavery * f,
		Political:     r.Political * f,
		WaterStress:   r.WaterStress * f,
		NatureLoss:    r.NatureLoss * f,
	}
}

// Add sums two vectors dimension by dimension.
func (r RiskVector) Add(o RiskVector) RiskVector {
	return RiskVector{
		Climate:       r.Climate + o.Climate,
		ModernSlavery: r.ModernSlavery + o.ModernSlavery,
		Political:     r.Political + o.Political,
		WaterStress:   r.WaterStress + o.WaterStress,
		NatureLoss:    r.NatureLoss + o.NatureLoss,
	}
}

// Round rounds every dimension to the given number of decimal places.
func (r RiskVector) Round(places int32) RiskVector {
	return RiskVector{
		Climate:       utils.Round(r.Climate, places),
		ModernSlavery: utils.Round(r.ModernSlavery, places),
		Political:     utils.Round(r.Political, places),
		WaterStress:   utils.Round(r.WaterStress, places),
		NatureLoss:    utils.Round(r.NatureLoss, places),
	}
}

// Blend computes direct*directWeight + indirect*indirectWeight per dimension.
func Blend(direct RiskVector, directWeight float64, indirect RiskVector, indirectWeight float64) RiskVector {
	return direct.Scale(directWeight).Add(indirect.Scale(indirectWeight))
}

// Get returns the score for a single dimension.
func (r RiskVector) Get(dim constants.RiskDimension) float64 {
	switch dim {
	case constants.DimensionClimate:
		return r.Climate
	case constants.DimensionModernSlavery:
		return r.ModernSlavery
	case constants.DimensionPolitical:
		return r.Political
	case constants.DimensionWaterStress:
		return r.WaterStress
	case constants.DimensionNatureLoss:
		return r.NatureLoss
	default:
		return 0
	}
}

// Max returns the highest score across dimensions and the dimension holding it.
func (r RiskVector) Max() (constants.RiskDimension, float64) {
	best := constants.Dimensions[0]
	bestScore := r.Get(best)
	for _, dim := range constants.Dimensions[1:] {
		if s := r.Get(dim); s > bestScore {
			best, bestScore = dim, s
		}
	}
	return best, bestScore
}
