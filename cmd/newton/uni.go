package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cvxmin/newton/univariate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var uniCmd = &cobra.Command{
	Use:   "uni",
	Short: "Minimize a univariate polynomial",
	Long: `Minimizes a polynomial given by its coefficients using Newton's
method with forward-difference derivatives and backtracking line search.`,
	RunE: runUni,
}

func init() {
	uniCmd.Flags().Float64("x0", 0, "Initial guess")
	uniCmd.Flags().String("coeffs", "0,0,1", "Polynomial coefficients c0,c1,c2,...")
	uniCmd.Flags().Int("max-iter", 100, "Maximum iterations")
	uniCmd.Flags().Float64("eps", 1e-5, "Finite-difference perturbation")
	uniCmd.Flags().Float64("tol", 1e-5, "Displacement convergence tolerance")
	uniCmd.Flags().Float64("alpha", 0.25, "Armijo sufficient-decrease parameter")
	uniCmd.Flags().Float64("beta", 0.5, "Backtracking shrink factor")
	uniCmd.Flags().Bool("trace", false, "Print the iteration trace")
	rootCmd.AddCommand(uniCmd)
}

func runUni(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	coeffs, err := parseVector(viper.GetString("coeffs"))
	if err != nil {
		return fmt.Errorf("invalid --coeffs: %w", err)
	}
	x0 := viper.GetFloat64("x0")

	settings := univariate.DefaultSettings()
	settings.MaxIter = viper.GetInt("max-iter")
	settings.Eps = viper.GetFloat64("eps")
	settings.Tol = viper.GetFloat64("tol")
	settings.Alpha = viper.GetFloat64("alpha")
	settings.Beta = viper.GetFloat64("beta")
	if viper.GetBool("trace") {
		settings.TraceWriters = []io.Writer{os.Stdout}
	}

	slog.Info("minimizing polynomial", "coeffs", coeffs, "x0", x0)

	result, err := univariate.Minimize(polynomial(coeffs), x0, settings)
	if err != nil {
		return err
	}

	fmt.Printf("x:           %v\n", result.X)
	fmt.Printf("objective:   %v\n", result.Obj)
	fmt.Printf("status:      %v\n", result.Status)
	fmt.Printf("iterations:  %d\n", result.Iterations)
	fmt.Printf("evaluations: %d\n", result.FunEvals)
	fmt.Printf("runtime:     %v\n", result.Runtime)
	return nil
}
