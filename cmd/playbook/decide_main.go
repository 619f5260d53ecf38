package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quantfold/playbook/internal/decision"
	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/profile"
)

// snapshotFile is the decide command's input document.
type snapshotFile struct {
	Symbol    string             `json:"symbol"`
	Snapshots domain.SnapshotSet `json:"snapshots"`
	Aux       domain.AuxSignals  `json:"aux"`
}

func loadProfileTable(path string) (*profile.Table, error) {
	if path == "" {
		return profile.DefaultTable(), nil
	}
	table, err := profile.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile table: %w", err)
	}
	log.Info().Str("path", path).Msg("profile table loaded")
	return table, nil
}

func runDecide(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	mode, _ := cmd.Flags().GetString("mode")
	strategyName, _ := cmd.Flags().GetString("strategy")
	profilesPath, _ := cmd.Flags().GetString("profiles")

	table, err := loadProfileTable(profilesPath)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var doc snapshotFile
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	if doc.Symbol == "" {
		return fmt.Errorf("snapshot file must name a symbol")
	}

	engine := decision.NewEngine(table)
	result := engine.Decide(decision.Request{
		Symbol:    doc.Symbol,
		Snapshots: doc.Snapshots,
		Mode:      mode,
		Strategy:  strategyName,
		Aux:       doc.Aux,
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode decision: %w", err)
	}
	fmt.Println(string(out))

	if result.BestSignal == "" {
		log.Info().Str("symbol", doc.Symbol).Msg("no qualifying setup")
	} else {
		best, _ := result.Best()
		log.Info().
			Str("symbol", doc.Symbol).
			Str("best_signal", result.BestSignal).
			Str("direction", string(best.Direction)).
			Float64("confidence", best.Confidence).
			Msg("setup selected")
	}
	return nil
}
