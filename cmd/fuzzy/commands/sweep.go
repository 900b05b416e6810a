/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sweep.go
Description: Sweep command implementation for the Akaylee Fuzzy engine. Evaluates a model over
a two dimensional input grid and writes the response surface as JSON for plotting tools.
*/

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-fuzzy/pkg/sweep"
	"github.com/kleascm/akaylee-fuzzy/pkg/utils"
)

// RunSweep evaluates a response surface
func RunSweep(cmd *cobra.Command, args []string) (err error) {
	session, err := NewSession()
	if err != nil {
		return err
	}
	defer session.Finish(&err)

	x, err := sweep.ParseAxis(viper.GetString("sweep.x"))
	if err != nil {
		return err
	}
	y, err := sweep.ParseAxis(viper.GetString("sweep.y"))
	if err != nil {
		return err
	}
	fixed, err := ParseInputs(viper.GetStringSlice("sweep.input"))
	if err != nil {
		return err
	}

	sys, err := session.LoadSystem(viper.GetString("sweep.model"), viper.GetString("sweep.model_file"))
	if err != nil {
		return err
	}

	start := time.Now()
	surface, err := sweep.Run(cmd.Context(), sys, sweep.Config{
		Block:   viper.GetString("sweep.block"),
		Output:  viper.GetString("sweep.target"),
		X:       x,
		Y:       y,
		Fixed:   fixed,
		Workers: viper.GetInt("sweep.workers"),
	})
	if err != nil {
		return fmt.Errorf("sweep %s: %w", sys.Name(), err)
	}
	session.Logger.LogSweep(surface.ID, surface.System, surface.Block,
		len(surface.X)*len(surface.Y), surface.Defaulted, time.Since(start), session.LogFields())

	path := viper.GetString("sweep.output")
	if path != "" {
		err = utils.WriteJSON(path, surface)
	} else {
		path, err = utils.WriteResult(viper.GetString("sweep.results_dir"), "sweep", sys.Name(), surface)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Surface %s: %s over %s x %s (%dx%d points, %d defaulted) -> %s\n",
		surface.ID, surface.Output, x.Variable, y.Variable, len(surface.X), len(surface.Y), surface.Defaulted, path)
	return nil
}
