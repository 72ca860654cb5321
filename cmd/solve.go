/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gofvm/setup"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run the boundary pipeline and time-step controller on a case",
	Long: `Run the boundary pipeline and time-step controller on a case.

The case file is YAML; it declares the physical models, the transported
scalars, the time-stepping options and the boundary groups of the
built-in box grid.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		caseFile, _ := cmd.Flags().GetString("caseFile")
		if len(caseFile) == 0 {
			fmt.Println("error: must supply a case file (-c, --caseFile)")
			exampleFile := `
########################################
Title: "Channel"
Turbulence: k-epsilon
TimeStepping: uniform
DtRef: 0.01
CourantMax: 1.
Grid: {Nx: 32, Ny: 16, Nz: 8, Lx: 4., Ly: 1., Lz: 1.}
BCs:
  xmin: {Type: inlet, Values: {velocity: {ValueX: 1.}}}
  xmax: {Type: outlet}
  ymin: {Type: wall}
  ymax: {Type: wall}
  zmin: {Type: symmetry}
  zmax: {Type: symmetry}
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}

		cp, err := setup.LoadCase(caseFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		cp.Print()

		procs, _ := cmd.Flags().GetInt("procs")
		cs, err := setup.Build(cp, procs)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}

		startIter := 0
		if restart, _ := cmd.Flags().GetString("restart"); len(restart) != 0 {
			f, err := os.Open(restart)
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			if startIter, _, err = setup.ReadCheckpoint(cs, f); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			f.Close()
		}

		maxIter, _ := cmd.Flags().GetInt("maxIterations")
		if cp.MaxIterations > 0 {
			maxIter = cp.MaxIterations
		}
		if err = setup.Run(cs, startIter, maxIter); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}

		if out, _ := cmd.Flags().GetString("checkpoint"); len(out) != 0 {
			f, err := os.Create(out)
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			if err = setup.WriteCheckpoint(cs, maxIter, 0, f); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			f.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("caseFile", "c", "", "YAML case file")
	solveCmd.Flags().IntP("maxIterations", "n", 100, "number of outer iterations")
	solveCmd.Flags().IntP("procs", "p", 0, "goroutine partitions, 0 = NumCPU")
	solveCmd.Flags().StringP("restart", "r", "", "checkpoint file to restart from")
	solveCmd.Flags().StringP("checkpoint", "o", "", "checkpoint file to write at the end")
	solveCmd.Flags().Bool("profile", false, "write a CPU profile")
}
