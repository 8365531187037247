package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akhenakh/sgp4sdp4"
)

var infoCmd = &cobra.Command{
	Use:   "info [catalog]",
	Short: "Summarize the orbit of every satellite of a catalog",
	Long: `
Print, for every satellite of a catalog, the propagation model it needs,
its geopotential resonance, its period, perigee and apogee heights and
its drag coefficient C1.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, _, sats, err := setup(args)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	writeTabbed(tw, []string{"catnr", "name", "regime", "resonance", "period_min", "perigee_km", "apogee_km", "c1"})
	for _, e := range sats {
		sat := sgp4sdp4.NewSatellite(e)
		writeTabbed(tw, []string{
			fmt.Sprint(e.CatNr),
			e.Name,
			sat.Regime().String(),
			sat.Resonance().String(),
			fmt.Sprintf("%.3f", sat.Period()),
			fmt.Sprintf("%.1f", sat.PerigeeAltitude()),
			fmt.Sprintf("%.1f", sat.ApogeeAltitude()),
			fmt.Sprintf("%.6e", sat.Coefficients().C1),
		})
	}
	return tw.Flush()
}
