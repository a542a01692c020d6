package tables

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/otto-perf/takeoff-performance/internal/kernels"
	"gopkg.in/yaml.v3"
)

//go:embed data/tableset.yaml
var embeddedTableSet []byte

var (
	loadOnce sync.Once
	loaded   *TableSet
	loadErr  error
)

// Load returns the process-wide compiled TableSet, decoding and validating
// the embedded YAML data exactly once regardless of how many goroutines
// call it concurrently (sync.Once). Every subsequent call is free and
// returns the same read-only value.
func Load() (*TableSet, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load(embeddedTableSet)
	})
	return loaded, loadErr
}

// MustLoad is Load but panics on error, for callers to whom a malformed
// embedded data file is an unrecoverable build defect.
func MustLoad() *TableSet {
	ts, err := Load()
	if err != nil {
		panic(err)
	}
	return ts
}

func load(raw []byte) (*TableSet, error) {
	var root rawRoot
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("tables: decode: %w", err)
	}

	ts := &TableSet{
		BleedBE:            root.Bleed.BE,
		BleedBP:            root.Bleed.BP,
		ForwardCgThreshold: root.ForwardCg.Threshold,
		TireSpeedMax:       root.MinSpeed.TireSpeedMax,
		StructuralMTOW:     root.StructuralMTOW,
		OEW:                root.OEW,
		MaxPressureAlt:     root.MaxPressureAlt,
		MaxTailwind:        root.MaxTailwind,
		MaxSlope:           root.MaxSlope,
		Crosswind: CrosswindTable{
			CompactedSnowColdOat:      root.Crosswind.CompactedSnowColdOat,
			CompactedSnowWarmOat:      root.Crosswind.CompactedSnowWarmOat,
			CompactedSnowOatThreshold: root.Crosswind.CompactedSnowOatThreshold,
			OtherSnow:                 root.Crosswind.OtherSnow,
			WaterSlush:                root.Crosswind.WaterSlush,
			DryWet:                    root.Crosswind.DryWet,
		},
	}

	var err error
	if ts.TRef, err = root.TRef.build(); err != nil {
		return nil, fmt.Errorf("tref: %w", err)
	}
	if ts.TMax, err = root.TMax.build(); err != nil {
		return nil, fmt.Errorf("tmax: %w", err)
	}

	if err := buildRunway(&root.Runway, &ts.Runway); err != nil {
		return nil, fmt.Errorf("runway: %w", err)
	}
	if err := buildPoly(&root.SecondSegment, &ts.SecondSegment); err != nil {
		return nil, fmt.Errorf("second_segment: %w", err)
	}
	if err := buildBrakeEnergy(&root.BrakeEnergy, &ts.BrakeEnergy); err != nil {
		return nil, fmt.Errorf("brake_energy: %w", err)
	}
	if err := buildVmcg(&root.Vmcg, &ts.Vmcg); err != nil {
		return nil, fmt.Errorf("vmcg: %w", err)
	}

	if err := need3(root.WetTow, "wet_tow"); err != nil {
		return nil, err
	}
	for i, w := range root.WetTow {
		wa, err := w.build()
		if err != nil {
			return nil, fmt.Errorf("wet_tow[%d]: %w", i, err)
		}
		ts.WetTow[i] = wa
	}
	if err := need3(root.WetFlex, "wet_flex"); err != nil {
		return nil, err
	}
	for i, w := range root.WetFlex {
		wa, err := w.build()
		if err != nil {
			return nil, fmt.Errorf("wet_flex[%d]: %w", i, err)
		}
		ts.WetFlex[i] = wa
	}
	if err := need3(root.WetV1, "wet_v1"); err != nil {
		return nil, err
	}
	for i, w := range root.WetV1 {
		wa, err := w.build()
		if err != nil {
			return nil, fmt.Errorf("wet_v1[%d]: %w", i, err)
		}
		ts.WetV1[i] = wa
	}
	if err := need3(root.WetVr, "wet_vr"); err != nil {
		return nil, err
	}
	for i, w := range root.WetVr {
		wa, err := w.build()
		if err != nil {
			return nil, fmt.Errorf("wet_vr[%d]: %w", i, err)
		}
		ts.WetVr[i] = wa
	}
	if err := need3(root.WetV2, "wet_v2"); err != nil {
		return nil, err
	}
	for i, w := range root.WetV2 {
		wa, err := w.build()
		if err != nil {
			return nil, fmt.Errorf("wet_v2[%d]: %w", i, err)
		}
		ts.WetV2[i] = wa
	}
	if err := need3(root.Tvmcg, "tvmcg"); err != nil {
		return nil, err
	}
	for i, v := range root.Tvmcg {
		t, err := v.build()
		if err != nil {
			return nil, fmt.Errorf("tvmcg[%d]: %w", i, err)
		}
		ts.Tvmcg[i] = t
	}
	if err := need3(root.ForwardCg.Coeffs, "forward_cg.coeffs"); err != nil {
		return nil, err
	}
	copy(ts.ForwardCg[:], root.ForwardCg.Coeffs)

	if err := buildContaminated(&root.Contaminated, ts); err != nil {
		return nil, fmt.Errorf("contaminated: %w", err)
	}

	if err := buildVSpeed(&root.VSpeed, &ts.VSpeed); err != nil {
		return nil, fmt.Errorf("vspeed: %w", err)
	}
	if err := buildMinSpeed(&root.MinSpeed, &ts.MinSpeed); err != nil {
		return nil, fmt.Errorf("min_speed: %w", err)
	}
	if err := buildLanding(&root.Landing, &ts.Landing); err != nil {
		return nil, fmt.Errorf("landing: %w", err)
	}

	ts.EnvelopeMTOW = EnvelopePolygon(root.Envelope.Mtow)
	ts.EnvelopeMZFW = EnvelopePolygon(root.Envelope.Mzfw)
	ts.EnvelopeMLW = EnvelopePolygon(root.Envelope.Mlw)

	return ts, nil
}

func need3[T any](s []T, name string) error {
	if len(s) != 3 {
		return fmt.Errorf("tables: %s needs exactly 3 entries (one per configuration), got %d", name, len(s))
	}
	return nil
}

func buildRunway(r *rawRunwayFamily, f *RunwayFamily) error {
	if err := need3(r.Base, "runway.base"); err != nil {
		return err
	}
	if err := need3(r.SlopeCoef, "runway.slope_coef"); err != nil {
		return err
	}
	if err := need3(r.Altitude, "runway.altitude"); err != nil {
		return err
	}
	if err := need3(r.Temperature, "runway.temperature"); err != nil {
		return err
	}
	if err := need3(r.WindHead, "runway.wind_head"); err != nil {
		return err
	}
	if err := need3(r.WindTail, "runway.wind_tail"); err != nil {
		return err
	}
	for i := range r.Base {
		t, err := r.Base[i].build()
		if err != nil {
			return fmt.Errorf("base[%d]: %w", i, err)
		}
		f.Base[i] = t
		f.SlopeCoef[i] = r.SlopeCoef[i]
		f.Altitude[i] = r.Altitude[i]
		f.Temperature[i] = sextupleToTempCoeffs(r.Temperature[i])
		f.WindHead[i] = quadToWindCoeffs(r.WindHead[i])
		f.WindTail[i] = quadToWindCoeffs(r.WindTail[i])
	}
	return nil
}

func buildPoly(r *rawPolyFamily, f *SecondSegmentFamily) error {
	if err := need3(r.BasePoly, "second_segment.base_poly"); err != nil {
		return err
	}
	if err := need3(r.SlopeCoef, "second_segment.slope_coef"); err != nil {
		return err
	}
	if err := need3(r.Altitude, "second_segment.altitude"); err != nil {
		return err
	}
	if err := need3(r.Temperature, "second_segment.temperature"); err != nil {
		return err
	}
	if err := need3(r.WindHead, "second_segment.wind_head"); err != nil {
		return err
	}
	if err := need3(r.WindTail, "second_segment.wind_tail"); err != nil {
		return err
	}
	for i := range r.BasePoly {
		f.BasePoly[i] = r.BasePoly[i]
		f.SlopeCoef[i] = r.SlopeCoef[i]
		f.Altitude[i] = r.Altitude[i]
		f.Temperature[i] = sextupleToTempCoeffs(r.Temperature[i])
		f.WindHead[i] = quadToWindCoeffs(r.WindHead[i])
		f.WindTail[i] = quadToWindCoeffs(r.WindTail[i])
	}
	return nil
}

func buildBrakeEnergy(r *rawBrakeEnergyFamily, f *BrakeEnergyFamily) error {
	if err := need3(r.BasePoly, "brake_energy.base_poly"); err != nil {
		return err
	}
	if err := need3(r.Temperature, "brake_energy.temperature"); err != nil {
		return err
	}
	for i := range r.BasePoly {
		f.BasePoly[i] = r.BasePoly[i]
		f.SlopeCoef[i] = r.SlopeCoef[i]
		f.Altitude[i] = r.Altitude[i]
		f.Temperature[i] = kernels.BrakeTempCoeffs{C0: r.Temperature[i][0], C1: r.Temperature[i][1]}
		f.WindHead[i] = quadToWindCoeffs(r.WindHead[i])
		f.WindTail[i] = quadToWindCoeffs(r.WindTail[i])
	}
	return nil
}

func buildVmcg(r *rawVmcgFamily, f *VmcgFamily) error {
	if err := need3(r.BasePoly, "vmcg.base_poly"); err != nil {
		return err
	}
	if err := need3(r.Wind, "vmcg.wind"); err != nil {
		return err
	}
	for i := range r.BasePoly {
		f.BasePoly[i] = r.BasePoly[i]
		f.SlopeCoef[i] = r.SlopeCoef[i]
		f.Altitude[i] = r.Altitude[i]
		f.Temperature[i] = sextupleToTempCoeffs(r.Temperature[i])
		h, t := r.Wind[i].Head, r.Wind[i].Tail
		f.Wind[i] = kernels.VmcgWindCoeffs{
			HeadW0: h[0], HeadW1: h[1], HeadW2: h[2], HeadW3: h[3],
			HeadW4: h[4], HeadW5: h[5], HeadW6: h[6], HeadW7: h[7],
			TailW0: t[0], TailW1: t[1], TailW2: t[2], TailW3: t[3],
			TailW4: t[4], TailW5: t[5],
		}
	}
	return nil
}

func sextupleToTempCoeffs(c [6]float64) kernels.TempCoeffs {
	return kernels.TempCoeffs{C0: c[0], C1: c[1], C2: c[2], C3: c[3], C4: c[4], C5: c[5]}
}

func quadToWindCoeffs(c [4]float64) kernels.WindCoeffs {
	return kernels.WindCoeffs{W0: c[0], W1: c[1], W2: c[2], W3: c[3]}
}

var conditionNames = map[string]ContaminatedCondition{
	"compacted_snow":  CondCompactedSnow,
	"dry_snow_10mm":   CondDrySnow10mm,
	"dry_snow_100mm":  CondDrySnow100mm,
	"wet_snow_5mm":    CondWetSnow5mm,
	"wet_snow_15mm":   CondWetSnow15mm,
	"wet_snow_30mm":   CondWetSnow30mm,
	"water_6mm":       CondWater6mm,
	"water_13mm":      CondWater13mm,
	"slush_6mm":       CondSlush6mm,
	"slush_13mm":      CondSlush13mm,
}

func buildContaminated(r *rawContaminated, ts *TableSet) error {
	if err := need3(r.BaseWeightCorrection, "contaminated.base_weight_correction"); err != nil {
		return err
	}
	if err := need3(r.BaseMtowMap, "contaminated.base_mtow_map"); err != nil {
		return err
	}
	if err := need3(r.BaseVSpeeds, "contaminated.base_vspeeds"); err != nil {
		return err
	}

	var baseWC, baseMap [3]Table1D
	var baseVS [3]VectorTable1D
	for i := 0; i < 3; i++ {
		t, err := r.BaseWeightCorrection[i].build()
		if err != nil {
			return fmt.Errorf("base_weight_correction[%d]: %w", i, err)
		}
		baseWC[i] = t
		m, err := r.BaseMtowMap[i].build()
		if err != nil {
			return fmt.Errorf("base_mtow_map[%d]: %w", i, err)
		}
		baseMap[i] = m
		v, err := r.BaseVSpeeds[i].build()
		if err != nil {
			return fmt.Errorf("base_vspeeds[%d]: %w", i, err)
		}
		baseVS[i] = v
	}

	ts.Contaminated = make(map[ContaminatedCondition]ContaminatedFamily, len(conditionNames))
	for name, cond := range conditionNames {
		meta, ok := r.Conditions[name]
		if !ok {
			return fmt.Errorf("missing condition %q", name)
		}
		var family ContaminatedFamily
		for i := 0; i < 3; i++ {
			scaled, err := scaleTable1D(baseWC[i], meta.Severity)
			if err != nil {
				return fmt.Errorf("%s weight_correction[%d]: %w", name, i, err)
			}
			family.WeightCorrection[i] = scaled
			family.Mtow[i] = baseMap[i]
			family.VSpeeds[i] = baseVS[i]
			family.MinCorrected[i] = meta.MinCorrected[i]
		}
		ts.Contaminated[cond] = family
	}
	return nil
}

// scaleTable1D multiplies a table's values by factor, used to derive a
// condition-severity-scaled weight-correction curve from the canonical one
// (see DESIGN.md: contaminated-condition table provenance).
func scaleTable1D(t Table1D, factor float64) (Table1D, error) {
	values := make([]float64, len(t.values))
	for i, v := range t.values {
		values[i] = v * factor
	}
	return NewTable1D(t.keys, values)
}

func buildVSpeedBranch(r *rawVSpeedBranch) (corr [3]VSpeedCorrections, baseV1, baseVr, baseV2 [3]Table1D, err error) {
	if err = need3(r.Corrections, "vspeed branch corrections"); err != nil {
		return
	}
	if err = need3(r.BaseV1, "vspeed branch base_v1"); err != nil {
		return
	}
	if err = need3(r.BaseVr, "vspeed branch base_vr"); err != nil {
		return
	}
	if err = need3(r.BaseV2, "vspeed branch base_v2"); err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		var c VSpeedCorrections
		if c.Runway, err = r.Corrections[i].Runway.build(); err != nil {
			return
		}
		if c.Altitude, err = r.Corrections[i].Altitude.build(); err != nil {
			return
		}
		if c.Wind, err = r.Corrections[i].Wind.build(); err != nil {
			return
		}
		c.SlopeCoef = r.Corrections[i].SlopeCoef
		corr[i] = c

		if baseV1[i], err = r.BaseV1[i].build(); err != nil {
			return
		}
		if baseVr[i], err = r.BaseVr[i].build(); err != nil {
			return
		}
		if baseV2[i], err = r.BaseV2[i].build(); err != nil {
			return
		}
	}
	return
}

func buildVSpeed(r *rawVSpeed, out *VSpeedTables) error {
	gCorr, gV1, gVr, gV2, err := buildVSpeedBranch(&r.Ground)
	if err != nil {
		return fmt.Errorf("ground: %w", err)
	}
	aCorr, aV1, aVr, aV2, err := buildVSpeedBranch(&r.Airborne)
	if err != nil {
		return fmt.Errorf("airborne: %w", err)
	}
	out.Corrections[BranchGround] = gCorr
	out.Corrections[BranchAirborne] = aCorr
	out.BaseV1[BranchGround], out.BaseV1[BranchAirborne] = gV1, aV1
	out.BaseVr[BranchGround], out.BaseVr[BranchAirborne] = gVr, aVr
	out.BaseV2[BranchGround], out.BaseV2[BranchAirborne] = gV2, aV2
	return nil
}

func buildMinSpeed(r *rawMinSpeed, out *MinSpeedTables) error {
	var err error
	if out.MinV1Vmc, err = r.MinV1Vmc.build(); err != nil {
		return fmt.Errorf("min_v1_vmc: %w", err)
	}
	if out.MinVrVmc, err = r.MinVrVmc.build(); err != nil {
		return fmt.Errorf("min_vr_vmc: %w", err)
	}
	if err := need3(r.MinV2Vmc, "min_speed.min_v2_vmc"); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if out.MinV2Vmc[i], err = r.MinV2Vmc[i].build(); err != nil {
			return fmt.Errorf("min_v2_vmc[%d]: %w", i, err)
		}
	}
	if len(r.MinV2VmuGrid) != 3 {
		return fmt.Errorf("min_speed.min_v2_vmu_grid needs exactly 3 entries, got %d", len(r.MinV2VmuGrid))
	}
	for i := 0; i < 3; i++ {
		t, err := NewTable2D(r.MinV2VmuKeys1, r.MinV2VmuKeys2, r.MinV2VmuGrid[i])
		if err != nil {
			return fmt.Errorf("min_v2_vmu_grid[%d]: %w", i, err)
		}
		out.MinV2Vmu[i] = t
	}
	return nil
}

var autobrakeModeNames = map[string]int{"low": 0, "medium": 1, "max": 2}
var flapNames = map[string]int{"full": 0, "conf3": 1}
var surfaceNames = map[string]Surface{"dry": SurfaceDry, "wet": SurfaceWet, "contaminated": SurfaceContaminated}

func buildLanding(r *rawLanding, out *LandingTables) error {
	out.RefDistance = map[AutobrakeKey]float64{}
	out.WeightCorrAbove = map[AutobrakeKey]float64{}
	out.WeightCorrBelow = map[AutobrakeKey]float64{}
	out.RefWeightKg = map[AutobrakeKey]float64{}
	out.SpeedCorrection = map[AutobrakeKey]float64{}
	out.WindCorrection = map[AutobrakeKey]float64{}
	out.ReverserCorrection = map[AutobrakeKey]float64{}
	out.AltitudeCorrection = map[AutobrakeKey]float64{}
	out.SlopeCorrection = map[AutobrakeKey]float64{}
	out.TempCorrection = map[AutobrakeKey]float64{}
	out.OverweightCorr = map[AutobrakeKey]float64{}
	out.AutolandFullCorr = map[AutobrakeKey]float64{}
	out.AutolandConf3Corr = map[AutobrakeKey]float64{}

	for _, e := range r.Entries {
		mode, ok := autobrakeModeNames[e.Mode]
		if !ok {
			return fmt.Errorf("unknown autobrake mode %q", e.Mode)
		}
		flap, ok := flapNames[e.Flap]
		if !ok {
			return fmt.Errorf("unknown flap %q", e.Flap)
		}
		surface, ok := surfaceNames[e.Surface]
		if !ok {
			return fmt.Errorf("unknown surface %q", e.Surface)
		}
		key := AutobrakeKey{Mode: mode, Flap: flap, Surface: surface}
		out.RefDistance[key] = e.RefDistance
		out.RefWeightKg[key] = e.RefWeightKg
		out.WeightCorrAbove[key] = e.WeightCorrAbove
		out.WeightCorrBelow[key] = e.WeightCorrBelow
		out.SpeedCorrection[key] = e.SpeedCorrection
		out.WindCorrection[key] = e.WindCorrection
		out.ReverserCorrection[key] = e.ReverserCorrection
		out.AltitudeCorrection[key] = e.AltitudeCorrection
		out.SlopeCorrection[key] = e.SlopeCorrection
		out.TempCorrection[key] = e.TempCorrection
		out.OverweightCorr[key] = e.OverweightCorr
		out.AutolandFullCorr[key] = e.AutolandFullCorr
		out.AutolandConf3Corr[key] = e.AutolandConf3Corr
	}

	if len(r.Vls) != 2 {
		return fmt.Errorf("landing.vls needs exactly 2 entries (Full, Conf3), got %d", len(r.Vls))
	}
	for i := 0; i < 2; i++ {
		t, err := r.Vls[i].build()
		if err != nil {
			return fmt.Errorf("vls[%d]: %w", i, err)
		}
		out.Vls[i] = t
	}
	return nil
}
