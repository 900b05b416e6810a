/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: models.go
Description: Model inspection commands for the Akaylee Fuzzy engine. check validates and builds
a model file without evaluating it; list-models prints the built-in models.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-fuzzy/pkg/modelfile"
	"github.com/kleascm/akaylee-fuzzy/pkg/models"
)

// RunCheck validates a model file and reports its shape
func RunCheck(cmd *cobra.Command, args []string) (err error) {
	session, err := NewSession()
	if err != nil {
		return err
	}
	defer session.Finish(&err)

	path := viper.GetString("check.model_file")
	m, err := modelfile.Load(path)
	if err != nil {
		return err
	}

	opts, err := session.SystemOptions()
	if err != nil {
		return err
	}
	sys, err := m.Build(opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	session.Logger.LogModelLoaded(sys, path, session.LogFields())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ %s: model %q is valid\n", path, sys.Name())
	fmt.Fprintf(out, "   kind:       %s\n", sys.Kind())
	fmt.Fprintf(out, "   variables:  %d\n", len(m.Variables))
	fmt.Fprintf(out, "   resolution: %d\n", sys.Resolution())
	for _, b := range sys.Blocks() {
		fmt.Fprintf(out, "   block %s: %d rules, inputs %v, outputs %v\n", b.Name(), len(b.Rules()), b.Inputs(), b.Outputs())
	}
	return nil
}

// ListModels prints the built-in models
func ListModels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range models.Names() {
		sys, err := models.Build(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-10s %-8s system=%s blocks=%d rules=%d\n",
			name, sys.Kind(), sys.Name(), len(sys.Blocks()), sys.RuleCount())
	}
	return nil
}
