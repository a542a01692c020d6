package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otto-perf/takeoff-performance/performance"
)

func newTakeoffCmd() *cobra.Command {
	var (
		tow           float64
		forwardCG     bool
		conf          int
		tora          float64
		slope         float64
		lineup        int
		wind          float64
		elevation     float64
		qnh           float64
		oat           float64
		antiIce       int
		packs         bool
		forceToga     bool
		condition     int
		cg            float64
		cgSet         bool
		optimalConfig bool
	)

	cmd := &cobra.Command{
		Use:   "takeoff",
		Short: "Compute MTOW, flex temperature, and V-speeds for a takeoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindTakeoffFlags(cmd)

			in := performance.Inputs{
				TOW:             viper.GetFloat64("tow"),
				ForwardCG:       viper.GetBool("forward-cg"),
				Conf:            performance.Configuration(viper.GetInt("conf")),
				TORA:            viper.GetFloat64("tora"),
				Slope:           viper.GetFloat64("slope"),
				LineupAngle:     performance.LineupAngle(viper.GetInt("lineup")),
				Wind:            viper.GetFloat64("wind"),
				Elevation:       viper.GetFloat64("elevation"),
				QNH:             viper.GetFloat64("qnh"),
				OAT:             viper.GetFloat64("oat"),
				AntiIce:         performance.AntiIce(viper.GetInt("anti-ice")),
				Packs:           viper.GetBool("packs"),
				ForceToga:       viper.GetBool("force-toga"),
				RunwayCondition: performance.RunwayCondition(viper.GetInt("condition")),
			}
			if cgSet {
				in.CG = &cg
			}

			calc := newCalculator()
			log.Debugf("calculating takeoff for conf=%v tow=%.0fkg condition=%v", in.Conf, in.TOW, in.RunwayCondition)

			if optimalConfig {
				out := calc.CalculateOptimalConfiguration(in)
				printTakeoffResult(cmd, out.Result)
				return nil
			}

			res := calc.Calculate(in)
			printTakeoffResult(cmd, res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&tow, "tow", 0, "takeoff weight, kg")
	flags.BoolVar(&forwardCG, "forward-cg", false, "aircraft is loaded at a forward CG")
	flags.IntVar(&conf, "conf", int(performance.Conf1), "takeoff flap configuration (1-3)")
	flags.Float64Var(&tora, "tora", 0, "runway length available, m")
	flags.Float64Var(&slope, "slope", 0, "runway slope, percent (negative = downhill)")
	flags.IntVar(&lineup, "lineup", 0, "lineup turn angle: 0, 1 (90deg), or 2 (180deg)")
	flags.Float64Var(&wind, "wind", 0, "wind component, knots (positive = headwind)")
	flags.Float64Var(&elevation, "elevation", 0, "airport elevation, ft")
	flags.Float64Var(&qnh, "qnh", 1013.25, "QNH, hPa")
	flags.Float64Var(&oat, "oat", 15, "outside air temperature, degC")
	flags.IntVar(&antiIce, "anti-ice", int(performance.AntiIceOff), "anti-ice state: 0=off, 1=engine, 2=engine+wing")
	flags.BoolVar(&packs, "packs", false, "air conditioning packs on for takeoff")
	flags.BoolVar(&forceToga, "force-toga", false, "force a full-thrust takeoff, skipping the flex search")
	flags.IntVar(&condition, "condition", int(performance.Dry), "runway condition code (see docs)")
	flags.Float64Var(&cg, "cg", 0, "center of gravity, percent MAC")
	flags.BoolVar(&cgSet, "cg-set", false, "validate the --cg value against the takeoff envelope")
	flags.BoolVar(&optimalConfig, "optimal-config", false, "search Conf1-Conf3 and report the best result")

	return cmd
}

func bindTakeoffFlags(cmd *cobra.Command) {
	for _, name := range []string{
		"tow", "forward-cg", "conf", "tora", "slope", "lineup", "wind",
		"elevation", "qnh", "oat", "anti-ice", "packs", "force-toga", "condition",
	} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
}

func printTakeoffResult(cmd *cobra.Command, res performance.Result) {
	if res.Err != performance.ErrNone {
		fmt.Fprintf(cmd.OutOrStdout(), "Calculation failed: %s\n", res.Err)
		return
	}

	printKV(cmd, "MTOW (kg)", fmt.Sprintf("%.0f", res.MTOW))
	if res.HasFlex {
		printKV(cmd, "Flex temperature (degC)", fmt.Sprintf("%.0f", res.Flex))
	} else {
		printKV(cmd, "Flex temperature", "not available, TOGA required")
	}
	printKV(cmd, "V1/Vr/V2 (kt)", fmt.Sprintf("%.0f / %.0f / %.0f", res.V1, res.Vr, res.V2))
	printKV(cmd, "Dry V1/Vr/V2 (kt)", fmt.Sprintf("%.0f / %.0f / %.0f", res.DryV1, res.DryVr, res.DryV2))
}
