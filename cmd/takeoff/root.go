// Command takeoff is the CLI front end for the performance engine: it binds
// flags and an optional config file to an Inputs/LandingInputs struct, runs
// one calculation, and prints a formatted report. No calculation logic lives
// here; this package only marshals flags into the performance package's
// request types and formats the result.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otto-perf/takeoff-performance/performance"
)

var (
	cfgFile string
	verbose bool
	log     = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "takeoff",
		Short: "Wide-body takeoff/landing performance engine",
		Long: "takeoff computes MTOW, flex temperature, V-speeds, landing distance,\n" +
			"and weight/CG envelope checks for a heavy wide-body transport.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newTakeoffCmd())
	root.AddCommand(newLandingCmd())
	root.AddCommand(newEnvelopeCmd())

	return root
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Warnf("could not read config file %s: %v", cfgFile, err)
		} else {
			log.Debugf("loaded config from %s", viper.ConfigFileUsed())
		}
	}
	viper.AutomaticEnv()
}

// newCalculator builds the process-wide Calculator once per invocation,
// exiting with a clear message if the embedded table data is malformed.
func newCalculator() *performance.Calculator {
	calc, err := performance.NewCalculator()
	if err != nil {
		log.Fatalf("failed to load performance tables: %v", err)
	}
	return calc
}

func printKV(w *cobra.Command, label string, v interface{}) {
	fmt.Fprintf(w.OutOrStdout(), "%-28s %v\n", label+":", v)
}
