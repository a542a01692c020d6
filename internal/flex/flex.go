// Package flex implements the bounded flex-temperature search: a
// one-degree integer scan over one of three temperature brackets, chosen by
// which limit bracket contains TOW, returning the highest temperature that
// still admits TOW under both the "from" and "to" governing families.
package flex

import (
	"math"

	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/limits"
	"github.com/otto-perf/takeoff-performance/internal/tables"
)

// Result is the outcome of a flex search: HasFlex is false when no flex
// temperature admits TOW (or flex was not attempted at all).
type Result struct {
	HasFlex bool
	Flex    float64
	Factor  limits.Factor
}

// SearchForTOW runs the flex search for a concrete takeoff weight. Flex is
// only attempted while the weight sits below the governing family's
// tRef-anchor limit; at or above it there is no thrust margin to trade.
func SearchForTOW(ts *tables.TableSet, s limits.Solved, conf int, p environment.Resolved, tow, oat float64, wet, engineAntiIce, engineWingAntiIce, packsOn bool) Result {
	govOAT := s.GoverningFactor[limits.AnchorOAT]
	if tow >= s.Family[govOAT].Limit[limits.AnchorTRef] {
		return Result{}
	}

	govTMax := s.GoverningFactor[limits.AnchorTMax]
	govTFlex := s.GoverningFactor[limits.AnchorTFlexMax]

	var lo, hi float64
	var fromFactor, toFactor limits.Factor
	switch {
	case tow > s.Family[govTMax].LimitNoBleed[limits.AnchorTMax]:
		lo, hi = p.TRef, p.TMax
		fromFactor, toFactor = s.GoverningFactor[limits.AnchorTRef], govTMax
	case tow > s.Family[govTFlex].LimitNoBleed[limits.AnchorTFlexMax]:
		lo, hi = p.TMax, p.TFlexMax
		fromFactor, toFactor = govTMax, govTFlex
	default:
		lo, hi = p.TFlexMax, p.TFlexMax+8
		fromFactor, toFactor = govTFlex, govTFlex
	}

	best := Result{}
	for t := math.Ceil(lo); t <= hi; t++ {
		fromTow, okFrom := s.EvalNoBleed(ts, conf, p, fromFactor, t)
		toTow, okTo := s.EvalNoBleed(ts, conf, p, toFactor, t)
		if !okFrom || !okTo {
			break
		}
		limiting := fromFactor
		candidate := fromTow
		if toTow < fromTow {
			limiting, candidate = toFactor, toTow
		}
		if tow > candidate {
			break
		}
		best = Result{HasFlex: true, Flex: t, Factor: limiting}
	}
	if !best.HasFlex {
		return best
	}

	flexTemp := best.Flex
	switch {
	case engineWingAntiIce:
		flexTemp -= 6
	case engineAntiIce:
		flexTemp -= 2
	}
	if packsOn {
		flexTemp -= 2
	}
	if flexTemp > p.TFlexMax {
		flexTemp = p.TFlexMax
	}
	flexTemp = math.Trunc(flexTemp)

	if wet {
		aboveTvmcg := limits.AboveTvmcg(ts, conf, oat, p.Headwind, p.AdjustedTora, p.PressureAlt)
		i := conf - 1
		delta := ts.WetFlex[i].Delta(aboveTvmcg, p.Headwind, limits.WetL(p.AdjustedTora, p.PressureAlt))
		flexTemp += delta
	}

	if flexTemp <= oat {
		return Result{}
	}
	best.Flex = flexTemp
	return best
}
