/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compute.go
Description: Compute command implementation for the Akaylee Fuzzy engine. Evaluates every
rule block of a built-in or file-defined model for one set of crisp inputs and prints the
results as text or JSON.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
)

// ComputeReport is the JSON form of a compute run
type ComputeReport struct {
	RunID   string                  `json:"run_id"`
	System  string                  `json:"system"`
	Kind    fuzzy.Kind              `json:"kind"`
	Inputs  map[string]float64      `json:"inputs"`
	Results map[string]fuzzy.Result `json:"results"`
}

// RunCompute evaluates a model for the given inputs
func RunCompute(cmd *cobra.Command, args []string) (err error) {
	session, err := NewSession()
	if err != nil {
		return err
	}
	defer session.Finish(&err)

	inputs, err := ParseInputs(viper.GetStringSlice("compute.input"))
	if err != nil {
		return err
	}

	sys, err := session.LoadSystem(viper.GetString("compute.model"), viper.GetString("compute.model_file"))
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := sys.Compute(inputs)
	if err != nil {
		return fmt.Errorf("compute %s: %w", sys.Name(), err)
	}
	elapsed := time.Since(start)

	for _, b := range sys.Blocks() {
		session.Logger.LogCompute(sys.Name(), results[b.Name()], elapsed, session.LogFields())
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("compute.json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ComputeReport{
			RunID:   session.RunID,
			System:  sys.Name(),
			Kind:    sys.Kind(),
			Inputs:  inputs,
			Results: results,
		})
	}

	printResults(out, sys, inputs, results)
	return nil
}

func printResults(out io.Writer, sys *fuzzy.System, inputs map[string]float64, results map[string]fuzzy.Result) {
	fmt.Fprintf(out, "Model: %s (%s)\n", sys.Name(), sys.Kind())

	parts := make([]string, 0, len(inputs))
	for _, name := range sortedKeys(inputs) {
		parts = append(parts, fmt.Sprintf("%s=%g", name, inputs[name]))
	}
	fmt.Fprintf(out, "Inputs: %s\n", strings.Join(parts, " "))

	for _, b := range sys.Blocks() {
		r := results[b.Name()]
		fired := fmt.Sprintf("%d/%d rules fired", r.Fired(), len(r.Strengths))

		if r.Kind == fuzzy.Sugeno {
			fmt.Fprintf(out, "  %s: %s = %g (%s)%s\n", b.Name(), b.Target(), r.Value, fired, defaultedMark(r, b.Target()))
			continue
		}
		for _, name := range sortedKeys(r.Outputs) {
			fmt.Fprintf(out, "  %s: %s = %g (%s)%s\n", b.Name(), name, r.Outputs[name], fired, defaultedMark(r, name))
		}
	}
}

func defaultedMark(r fuzzy.Result, output string) string {
	for _, d := range r.Defaulted {
		if d == output {
			return " [default]"
		}
	}
	return ""
}
