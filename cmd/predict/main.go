// Package main provides a one-shot CLI for the spread prediction pipeline.
// It reads the same payload the /cfb/run_model endpoint accepts, from a file
// or stdin, and prints the model output as indented JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/cfb-edge/internal/engine"
	"github.com/yourusername/cfb-edge/internal/models"
	"github.com/yourusername/cfb-edge/internal/staking"
	"github.com/yourusername/cfb-edge/internal/validation"
)

var (
	inputFile string
	bankroll  float64
)

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "-", "Payload file ('-' for stdin)")
	rootCmd.Flags().Float64VarP(&bankroll, "bankroll", "b", 0, "Bankroll to size the recommended stake against")
}

var rootCmd = &cobra.Command{
	Use:   "cfb-edge-predict",
	Short: "Run one spread prediction from a JSON payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrediction()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func readPayload() ([]byte, error) {
	if inputFile == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(inputFile)
}

func runPrediction() error {
	data, err := readPayload()
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	var req models.RunModelRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("payload must be valid JSON: %w", err)
	}
	if !req.HasSections() {
		return models.ErrSchema
	}
	if !validation.NewRangeValidator().Validate(&req) {
		return models.ErrValidation
	}

	out, err := engine.New().Run(models.InputSetFromMap(req.Inputs), models.MarketSetFromMap(req.Market))
	if err != nil {
		return err
	}

	result := map[string]interface{}{
		"status":       "ok",
		"model_output": out,
	}
	if bankroll > 0 && out.Recommendation.Side != models.SideNoBet {
		result["recommended_stake"] = staking.StakeAmount(bankroll, out.Recommendation.QuarterKellyFraction)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
