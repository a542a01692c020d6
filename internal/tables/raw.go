package tables

import "fmt"

// The raw* types below mirror the YAML schema in data/*.yaml exactly. They
// exist only to give yaml.v3 something to decode into; Load converts each
// one into its validated, immutable counterpart and never retains the raw
// value afterward.

type rawTable1D struct {
	Keys   []float64 `yaml:"keys"`
	Values []float64 `yaml:"values"`
}

func (r rawTable1D) build() (Table1D, error) { return NewTable1D(r.Keys, r.Values) }

type rawVectorTable1D struct {
	Keys    []float64   `yaml:"keys"`
	Vectors [][]float64 `yaml:"vectors"`
}

func (r rawVectorTable1D) build() (VectorTable1D, error) { return NewVectorTable1D(r.Keys, r.Vectors) }

type rawAffinePair struct {
	Keys    []float64   `yaml:"keys"`
	Vectors [][]float64 `yaml:"vectors"` // each [m1, b1, m2, b2]
}

func (r rawAffinePair) build() (AffinePair, error) {
	t, err := NewVectorTable1D(r.Keys, r.Vectors)
	if err != nil {
		return AffinePair{}, err
	}
	return AffinePair{table: t}, nil
}

type rawWetAdjustment struct {
	Above     rawAffinePair `yaml:"above"`
	AtOrBelow rawAffinePair `yaml:"at_or_below"`
}

func (r rawWetAdjustment) build() (WetAdjustment, error) {
	above, err := r.Above.build()
	if err != nil {
		return WetAdjustment{}, fmt.Errorf("above: %w", err)
	}
	below, err := r.AtOrBelow.build()
	if err != nil {
		return WetAdjustment{}, fmt.Errorf("at_or_below: %w", err)
	}
	return WetAdjustment{Above: above, AtOrBelow: below}, nil
}

type rawRunwayFamily struct {
	Base        []rawTable1D `yaml:"base"`
	SlopeCoef   []float64    `yaml:"slope_coef"`
	Altitude    [][2]float64 `yaml:"altitude"`
	Temperature [][6]float64 `yaml:"temperature"`
	WindHead    [][4]float64 `yaml:"wind_head"`
	WindTail    [][4]float64 `yaml:"wind_tail"`
}

type rawPolyFamily struct {
	BasePoly    [][2]float64 `yaml:"base_poly"`
	SlopeCoef   []float64    `yaml:"slope_coef"`
	Altitude    [][2]float64 `yaml:"altitude"`
	Temperature [][6]float64 `yaml:"temperature"`
	WindHead    [][4]float64 `yaml:"wind_head"`
	WindTail    [][4]float64 `yaml:"wind_tail"`
}

type rawBrakeEnergyFamily struct {
	BasePoly    [][2]float64 `yaml:"base_poly"`
	SlopeCoef   []float64    `yaml:"slope_coef"`
	Altitude    [][2]float64 `yaml:"altitude"`
	Temperature [][2]float64 `yaml:"temperature"`
	WindHead    [][4]float64 `yaml:"wind_head"`
	WindTail    [][4]float64 `yaml:"wind_tail"`
}

type rawVmcgWind struct {
	Head [8]float64 `yaml:"head"`
	Tail [6]float64 `yaml:"tail"`
}

type rawVmcgFamily struct {
	BasePoly    [][2]float64  `yaml:"base_poly"`
	SlopeCoef   []float64     `yaml:"slope_coef"`
	Altitude    [][2]float64  `yaml:"altitude"`
	Temperature [][6]float64  `yaml:"temperature"`
	Wind        []rawVmcgWind `yaml:"wind"`
}

type rawBleed struct {
	BE float64 `yaml:"be"`
	BP float64 `yaml:"bp"`
}

type rawForwardCg struct {
	Coeffs    [][2]float64 `yaml:"coeffs"`
	Threshold float64      `yaml:"threshold"`
}

type rawContaminatedConditionMeta struct {
	Severity     float64    `yaml:"severity"`
	MinCorrected [3]float64 `yaml:"min_corrected"`
}

type rawContaminated struct {
	Conditions           map[string]rawContaminatedConditionMeta `yaml:"conditions"`
	BaseWeightCorrection []rawTable1D                            `yaml:"base_weight_correction"`
	BaseMtowMap          []rawTable1D                            `yaml:"base_mtow_map"`
	BaseVSpeeds          []rawVectorTable1D                      `yaml:"base_vspeeds"`
}

type rawVSpeedCorrections struct {
	Runway    rawTable1D `yaml:"runway"`
	Altitude  rawTable1D `yaml:"altitude"`
	SlopeCoef float64    `yaml:"slope_coef"`
	Wind      rawTable1D `yaml:"wind"`
}

type rawVSpeedBranch struct {
	Corrections []rawVSpeedCorrections `yaml:"corrections"` // per conf
	BaseV1      []rawTable1D           `yaml:"base_v1"`
	BaseVr      []rawTable1D           `yaml:"base_vr"`
	BaseV2      []rawTable1D           `yaml:"base_v2"`
}

type rawVSpeed struct {
	Ground   rawVSpeedBranch `yaml:"ground"`
	Airborne rawVSpeedBranch `yaml:"airborne"`
}

type rawMinSpeed struct {
	MinV1Vmc rawTable1D   `yaml:"min_v1_vmc"`
	MinVrVmc rawTable1D   `yaml:"min_vr_vmc"`
	MinV2Vmc []rawTable1D `yaml:"min_v2_vmc"` // per conf

	MinV2VmuKeys1 []float64     `yaml:"min_v2_vmu_keys1"` // pressureAlt
	MinV2VmuKeys2 []float64     `yaml:"min_v2_vmu_keys2"` // tow
	MinV2VmuGrid  [][][]float64 `yaml:"min_v2_vmu_grid"`  // per conf, [keys1][keys2]

	TireSpeedMax float64 `yaml:"tire_speed_max"`
}

type rawCrosswind struct {
	CompactedSnowColdOat      float64 `yaml:"compacted_snow_cold_oat"`
	CompactedSnowWarmOat      float64 `yaml:"compacted_snow_warm_oat"`
	CompactedSnowOatThreshold float64 `yaml:"compacted_snow_oat_threshold"`
	OtherSnow                 float64 `yaml:"other_snow"`
	WaterSlush                float64 `yaml:"water_slush"`
	DryWet                    float64 `yaml:"dry_wet"`
}

type rawLandingEntry struct {
	Mode               string  `yaml:"mode"`
	Flap               string  `yaml:"flap"`
	Surface            string  `yaml:"surface"`
	RefDistance        float64 `yaml:"ref_distance"`
	RefWeightKg        float64 `yaml:"ref_weight_kg"`
	WeightCorrAbove    float64 `yaml:"weight_corr_above"`
	WeightCorrBelow    float64 `yaml:"weight_corr_below"`
	SpeedCorrection    float64 `yaml:"speed_correction"`
	WindCorrection     float64 `yaml:"wind_correction"`
	ReverserCorrection float64 `yaml:"reverser_correction"`
	AltitudeCorrection float64 `yaml:"altitude_correction"`
	SlopeCorrection    float64 `yaml:"slope_correction"`
	TempCorrection     float64 `yaml:"temp_correction"`
	OverweightCorr     float64 `yaml:"overweight_corr"`
	AutolandFullCorr   float64 `yaml:"autoland_full_corr"`
	AutolandConf3Corr  float64 `yaml:"autoland_conf3_corr"`
}

type rawLanding struct {
	Entries []rawLandingEntry  `yaml:"entries"`
	Vls     []rawVectorTable1D `yaml:"vls"` // [FlapFull, FlapConf3]
}

type rawEnvelope struct {
	Mtow [][2]float64 `yaml:"mtow"`
	Mzfw [][2]float64 `yaml:"mzfw"`
	Mlw  [][2]float64 `yaml:"mlw"`
}

type rawRoot struct {
	TRef rawTable1D `yaml:"tref"`
	TMax rawTable1D `yaml:"tmax"`

	Runway        rawRunwayFamily      `yaml:"runway"`
	SecondSegment rawPolyFamily        `yaml:"second_segment"`
	BrakeEnergy   rawBrakeEnergyFamily `yaml:"brake_energy"`
	Vmcg          rawVmcgFamily        `yaml:"vmcg"`

	Bleed rawBleed `yaml:"bleed"`

	WetTow  []rawWetAdjustment `yaml:"wet_tow"`
	WetFlex []rawWetAdjustment `yaml:"wet_flex"`
	WetV1   []rawWetAdjustment `yaml:"wet_v1"`
	WetVr   []rawWetAdjustment `yaml:"wet_vr"`
	WetV2   []rawWetAdjustment `yaml:"wet_v2"`
	Tvmcg   []rawVectorTable1D `yaml:"tvmcg"`

	ForwardCg rawForwardCg `yaml:"forward_cg"`

	Contaminated rawContaminated `yaml:"contaminated"`

	VSpeed   rawVSpeed   `yaml:"vspeed"`
	MinSpeed rawMinSpeed `yaml:"min_speed"`

	Crosswind rawCrosswind `yaml:"crosswind"`

	Landing rawLanding `yaml:"landing"`

	Envelope rawEnvelope `yaml:"envelope"`

	StructuralMTOW float64 `yaml:"structural_mtow"`
	OEW            float64 `yaml:"oew"`
	MaxPressureAlt float64 `yaml:"max_pressure_alt"`
	MaxTailwind    float64 `yaml:"max_tailwind"`
	MaxSlope       float64 `yaml:"max_slope"`
}
