package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otto-perf/takeoff-performance/performance"
)

func newEnvelopeCmd() *cobra.Command {
	var (
		cgPercentMAC float64
		weightKg     float64
		zfwKg        float64
		fuelKg       float64
		condition    int
		oat          float64
		cgPosM       float64
		macStartM    float64
		macLenM      float64
		computeCg    bool
	)

	cmd := &cobra.Command{
		Use:   "envelope",
		Short: "Check weight/CG envelope limits, crosswind limits, and weight consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindEnvelopeFlags(cmd)
			calc := newCalculator()

			cg := viper.GetFloat64("cg-percent-mac")
			if computeCg {
				cg = performance.ComputeCgPercentMAC(cgPosM, macStartM, macLenM)
				printKV(cmd, "Computed CG (%MAC)", fmt.Sprintf("%.2f", cg))
			}

			weight := viper.GetFloat64("weight-kg")

			envCheck := calc.CheckPerformanceEnvelope(cg, weight)
			if envCheck.OK {
				printKV(cmd, "Envelope", "within all published limits")
			} else {
				printKV(cmd, "Envelope", fmt.Sprintf("outside: %s", strings.Join(envCheck.Failing, ", ")))
			}

			inLimits := calc.IsCgWithinLimits(cg, weight)
			printKV(cmd, "Within takeoff (MTOW) envelope", inLimits)

			cond := performance.RunwayCondition(viper.GetInt("condition"))
			crosswind := calc.GetCrosswindLimit(cond, viper.GetFloat64("oat"))
			printKV(cmd, "Crosswind limit (kt)", fmt.Sprintf("%.0f", crosswind))

			zfw := viper.GetFloat64("zfw-kg")
			fuel := viper.GetFloat64("fuel-kg")
			wc := calc.CheckWeights(weight, zfw, fuel)
			if wc.OK {
				printKV(cmd, "Weights", "consistent")
			} else {
				printKV(cmd, "Weights", strings.Join(wc.Violations, "; "))
			}

			log.Debugf("envelope check complete: cg=%.2f weight=%.0fkg condition=%v", cg, weight, cond)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&cgPercentMAC, "cg-percent-mac", 0, "center of gravity, percent MAC")
	flags.Float64Var(&weightKg, "weight-kg", 0, "gross weight, kg")
	flags.Float64Var(&zfwKg, "zfw-kg", 0, "zero-fuel weight, kg")
	flags.Float64Var(&fuelKg, "fuel-kg", 0, "fuel weight, kg")
	flags.IntVar(&condition, "condition", int(performance.Dry), "runway condition code (see docs)")
	flags.Float64Var(&oat, "oat", 15, "outside air temperature, degC")
	flags.BoolVar(&computeCg, "compute-cg", false, "derive --cg-percent-mac from --cg-pos-m/--mac-start-m/--mac-len-m")
	flags.Float64Var(&cgPosM, "cg-pos-m", 0, "CG position, meters from datum")
	flags.Float64Var(&macStartM, "mac-start-m", 0, "MAC leading edge position, meters from datum")
	flags.Float64Var(&macLenM, "mac-len-m", 1, "MAC length, meters")

	return cmd
}

func bindEnvelopeFlags(cmd *cobra.Command) {
	for _, name := range []string{
		"cg-percent-mac", "weight-kg", "zfw-kg", "fuel-kg", "condition", "oat",
	} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
}
