package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otto-perf/takeoff-performance/performance"
)

func newLandingCmd() *cobra.Command {
	var (
		weightKg        float64
		flap            int
		condition       int
		headingDeltaRad float64
		wind            float64
		elevation       float64
		qnh             float64
		oat             float64
		slope           float64
		reverseThrust   bool
		overweight      bool
		autoland        bool
		approachSpeed   float64
		approachSet     bool
	)

	cmd := &cobra.Command{
		Use:   "landing",
		Short: "Compute margined landing distance for each autobrake mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindLandingFlags(cmd)

			in := performance.LandingInputs{
				WeightKg:        viper.GetFloat64("weight-kg"),
				Flap:            performance.FlapLanding(viper.GetInt("flap")),
				RunwayCondition: performance.RunwayCondition(viper.GetInt("condition")),
				HeadingDeltaRad: viper.GetFloat64("heading-delta"),
				Wind:            viper.GetFloat64("wind"),
				Elevation:       viper.GetFloat64("elevation"),
				QNH:             viper.GetFloat64("qnh"),
				OAT:             viper.GetFloat64("oat"),
				Slope:           viper.GetFloat64("slope"),
				ReverseThrust:   viper.GetBool("reverse-thrust"),
				Overweight:      viper.GetBool("overweight"),
				Autoland:        viper.GetBool("autoland"),
			}
			if approachSet {
				in.ApproachSpeed = &approachSpeed
			}

			calc := newCalculator()
			log.Debugf("calculating landing distances for flap=%v weight=%.0fkg condition=%v", in.Flap, in.WeightKg, in.RunwayCondition)

			res := calc.CalculateLandingDistances(in)
			printKV(cmd, "Max autobrake (m)", fmt.Sprintf("%.0f", res.MaxAutobrakeDist))
			printKV(cmd, "Medium autobrake (m)", fmt.Sprintf("%.0f", res.MediumAutobrakeDist))
			printKV(cmd, "Low autobrake (m)", fmt.Sprintf("%.0f", res.LowAutobrakeDist))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&weightKg, "weight-kg", 0, "landing weight, kg")
	flags.IntVar(&flap, "flap", int(performance.FlapFull), "landing flap setting: 0=Full, 1=Conf3")
	flags.IntVar(&condition, "condition", int(performance.Dry), "runway condition code (see docs)")
	flags.Float64Var(&headingDeltaRad, "heading-delta", 0, "angle between wind direction and runway heading, radians")
	flags.Float64Var(&wind, "wind", 0, "wind speed, knots")
	flags.Float64Var(&elevation, "elevation", 0, "airport elevation, ft")
	flags.Float64Var(&qnh, "qnh", 1013.25, "QNH, hPa")
	flags.Float64Var(&oat, "oat", 15, "outside air temperature, degC")
	flags.Float64Var(&slope, "slope", 0, "runway slope, percent (negative = downhill)")
	flags.BoolVar(&reverseThrust, "reverse-thrust", false, "reverse thrust used on rollout")
	flags.BoolVar(&overweight, "overweight", false, "landing above the normal structural landing weight")
	flags.BoolVar(&autoland, "autoland", false, "autoland performed")
	flags.Float64Var(&approachSpeed, "approach-speed", 0, "actual approach speed, kt (default: computed Vls)")
	flags.BoolVar(&approachSet, "approach-speed-set", false, "use --approach-speed instead of the computed Vls")

	return cmd
}

func bindLandingFlags(cmd *cobra.Command) {
	for _, name := range []string{
		"weight-kg", "flap", "condition", "heading-delta", "wind",
		"elevation", "qnh", "oat", "slope", "reverse-thrust", "overweight", "autoland",
	} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
}
