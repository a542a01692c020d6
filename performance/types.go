// Package performance implements a deterministic takeoff/landing performance
// engine for a heavy wide-body transport. The engine is a pure function of
// its inputs and a process-wide immutable table set: it performs no I/O, no
// clock reads, and no randomness, and is safe to call concurrently from any
// number of goroutines.
package performance

import "fmt"

// Configuration is the takeoff flap setting family.
type Configuration int

const (
	Conf1 Configuration = iota + 1
	Conf2
	Conf3
)

func (c Configuration) valid() bool {
	return c >= Conf1 && c <= Conf3
}

func (c Configuration) String() string {
	switch c {
	case Conf1:
		return "Conf1"
	case Conf2:
		return "Conf2"
	case Conf3:
		return "Conf3"
	default:
		return fmt.Sprintf("Configuration(%d)", int(c))
	}
}

// FlapLanding is the landing flap family.
type FlapLanding int

const (
	FlapFull FlapLanding = iota
	FlapConf3
)

func (f FlapLanding) String() string {
	if f == FlapFull {
		return "Full"
	}
	return "Conf3"
}

// LimitingFactor identifies which performance family governs a given weight.
type LimitingFactor int

const (
	Runway LimitingFactor = iota
	SecondSegment
	BrakeEnergy
	Vmcg
)

func (f LimitingFactor) String() string {
	switch f {
	case Runway:
		return "Runway"
	case SecondSegment:
		return "SecondSegment"
	case BrakeEnergy:
		return "BrakeEnergy"
	case Vmcg:
		return "Vmcg"
	default:
		return fmt.Sprintf("LimitingFactor(%d)", int(f))
	}
}

// RunwayCondition enumerates the supported runway surface states.
type RunwayCondition int

const (
	Dry RunwayCondition = iota
	Wet
	CompactedSnow
	DrySnow10mm
	DrySnow100mm
	WetSnow5mm
	WetSnow15mm
	WetSnow30mm
	Water6mm
	Water13mm
	Slush6mm
	Slush13mm
)

func (c RunwayCondition) String() string {
	switch c {
	case Dry:
		return "Dry"
	case Wet:
		return "Wet"
	case CompactedSnow:
		return "CompactedSnow"
	case DrySnow10mm:
		return "DrySnow10mm"
	case DrySnow100mm:
		return "DrySnow100mm"
	case WetSnow5mm:
		return "WetSnow5mm"
	case WetSnow15mm:
		return "WetSnow15mm"
	case WetSnow30mm:
		return "WetSnow30mm"
	case Water6mm:
		return "Water6mm"
	case Water13mm:
		return "Water13mm"
	case Slush6mm:
		return "Slush6mm"
	case Slush13mm:
		return "Slush13mm"
	default:
		return fmt.Sprintf("RunwayCondition(%d)", int(c))
	}
}

// isContaminated reports whether the condition uses the contaminated-runway
// MTOW/V-speed path (§4.7/§4.8) rather than the dry/wet path.
func (c RunwayCondition) isContaminated() bool {
	return c != Dry && c != Wet
}

// AutobrakeMode is a preselected landing deceleration profile.
type AutobrakeMode int

const (
	AutobrakeLow AutobrakeMode = iota
	AutobrakeMedium
	AutobrakeMax
)

func (m AutobrakeMode) String() string {
	switch m {
	case AutobrakeLow:
		return "Low"
	case AutobrakeMedium:
		return "Medium"
	case AutobrakeMax:
		return "Max"
	default:
		return fmt.Sprintf("AutobrakeMode(%d)", int(m))
	}
}

// LineupAngle is the angle the aircraft turns through to line up on the
// runway centerline before brake release.
type LineupAngle int

const (
	Lineup0 LineupAngle = iota
	Lineup90
	Lineup180
)

// AntiIce selects which anti-ice systems are running, each consuming bleed
// air and reducing available thrust.
type AntiIce int

const (
	AntiIceOff AntiIce = iota
	AntiIceEngine
	AntiIceEngineWing
)

// Error is the closed set of domain failure modes the engine can report.
// The engine never panics for a business-logic failure; it always returns a
// populated Result with Error set to the precise code.
type Error int

const (
	ErrNone Error = iota
	ErrInvalidData
	ErrStructuralMtow
	ErrMaxPressureAlt
	ErrMaxTemperature
	ErrOew
	ErrCgOutOfLimits
	ErrMaxTailwind
	ErrMaxSlope
	ErrTooHeavy
	ErrTooLight
	ErrVmcgVmcaLimits
	ErrMaxTireSpeed
)

func (e Error) String() string {
	switch e {
	case ErrNone:
		return "None"
	case ErrInvalidData:
		return "InvalidData"
	case ErrStructuralMtow:
		return "StructuralMtow"
	case ErrMaxPressureAlt:
		return "MaxPressureAlt"
	case ErrMaxTemperature:
		return "MaxTemperature"
	case ErrOew:
		return "Oew"
	case ErrCgOutOfLimits:
		return "CgOutOfLimits"
	case ErrMaxTailwind:
		return "MaxTailwind"
	case ErrMaxSlope:
		return "MaxSlope"
	case ErrTooHeavy:
		return "TooHeavy"
	case ErrTooLight:
		return "TooLight"
	case ErrVmcgVmcaLimits:
		return "VmcgVmcaLimits"
	case ErrMaxTireSpeed:
		return "MaxTireSpeed"
	default:
		return fmt.Sprintf("Error(%d)", int(e))
	}
}

// Error implements the standard error interface. No function in this
// package returns an Error as a Go error value: business-logic failures are
// reported through Result.Err, and table loading reports its failures with
// ordinary wrapped errors.
func (e Error) Error() string { return e.String() }

// Inputs is the raw takeoff request. It is immutable for the duration of a
// calculation.
type Inputs struct {
	TOW             float64 // takeoff weight, kg
	ForwardCG       bool
	Conf            Configuration
	TORA            float64 // runway length available, m
	Slope           float64 // signed percent, negative = downhill
	LineupAngle     LineupAngle
	Wind            float64 // signed knots, positive = headwind
	Elevation       float64 // airport elevation, ft
	QNH             float64 // hPa
	OAT             float64 // outside air temperature, degC
	AntiIce         AntiIce
	Packs           bool
	ForceToga       bool
	RunwayCondition RunwayCondition
	CG              *float64 // percent MAC, optional
}

// TemperatureAnchor names the four OAT anchors every limit family is
// evaluated at.
type TemperatureAnchor int

const (
	AnchorOAT TemperatureAnchor = iota
	AnchorTRef
	AnchorTMax
	AnchorTFlexMax
)

// Parameters holds the environment-derived intermediates computed once per
// call by the environment resolver (§4.2).
type Parameters struct {
	IsaTemp      float64
	PressureAlt  float64
	TRef         float64
	TMax         float64
	TFlexMax     float64
	AdjustedTora float64
	Headwind     float64 // clamped at maxHeadwind; tailwinds remain negative
}

// FamilyLimit stores every intermediate weight anchor computed for one
// limiting factor (§4.4).
type FamilyLimit struct {
	Base       float64
	SlopeLimit float64
	AltLimit   float64

	// Per-anchor values, indexed by TemperatureAnchor.
	LimitNoBleed [4]float64
	Limit        [4]float64
	DeltaT       [4]float64
	DeltaW       [4]float64
}

// Result is the full output of a takeoff calculation.
type Result struct {
	Inputs     Inputs
	Parameters Parameters

	Limits          map[LimitingFactor]FamilyLimit
	GoverningFactor [4]LimitingFactor // indexed by TemperatureAnchor

	MTOW float64

	HasFlex            bool
	Flex               float64
	FlexLimitingFactor LimitingFactor

	DryV1, DryVr, DryV2 float64
	V1, Vr, V2          float64

	StabTrim *float64
	Err      Error
}

// OptimalResult wraps the outcome of CalculateOptimalConfiguration.
type OptimalResult struct {
	Result    Result
	Attempted map[Configuration]Result
}

// EnvelopeCheck is the return of CheckPerformanceEnvelope.
type EnvelopeCheck struct {
	OK      bool
	Failing []string
}

// WeightCheck is the return of CheckWeights.
type WeightCheck struct {
	OK         bool
	Violations []string
}

// LandingResult is the return of CalculateLandingDistances.
type LandingResult struct {
	MaxAutobrakeDist    float64
	MediumAutobrakeDist float64
	LowAutobrakeDist    float64
}

// LandingInputs is the raw request for a landing distance calculation.
type LandingInputs struct {
	WeightKg        float64
	Flap            FlapLanding
	RunwayCondition RunwayCondition
	HeadingDeltaRad float64 // angle between wind direction and runway heading
	Wind            float64 // wind speed, knots; direction comes from HeadingDeltaRad and the sign is ignored
	Elevation       float64
	QNH             float64
	OAT             float64
	Slope           float64
	ReverseThrust   bool
	Overweight      bool
	Autoland        bool
	ApproachSpeed   *float64 // if nil, computed from the Vls table
}
