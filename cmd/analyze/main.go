package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/experiment"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/report"
)

func main() {
	dataFile := flag.String("data", "", "Path to the weaving production CSV file")
	configFile := flag.String("config", "", "Path to YAML analysis config (optional)")
	targets := flag.String("targets", "", "Comma-separated target columns (default from config)")
	seed := flag.Int64("seed", -1, "Random seed override")
	folds := flag.Int("cv-folds", 0, "Cross-validation folds override")
	trainFrac := flag.Float64("train-frac", 0, "Training fraction override (0-1)")
	scaleScope := flag.String("scale-scope", "", "Standardization scope: full|train")
	output := flag.String("output", "", "CSV file for raw results (optional)")

	flag.Parse()

	if *dataFile == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/analyze/main.go -data data/production.csv")
		fmt.Println("  go run cmd/analyze/main.go -data data/production.csv -config config/analysis.yaml")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := experiment.DefaultConfig()
	if *configFile != "" {
		loaded, err := experiment.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		config = loaded
	}

	if *targets != "" {
		config.Analysis.Targets = splitList(*targets)
	}
	if *seed >= 0 {
		config.Analysis.Seed = *seed
	}
	if *folds > 0 {
		config.Analysis.CrossValidation.Folds = *folds
	}
	if *trainFrac > 0 {
		config.Analysis.TrainFraction = *trainFrac
	}
	if *scaleScope != "" {
		config.Analysis.ScaleScope = *scaleScope
	}

	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Printf("Loading dataset from %s...\n", *dataFile)
	frame, err := data.NewCSVReader(*dataFile).LoadFrame()
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}
	fmt.Printf("Loaded %d records with %d columns\n", frame.NumRows(), len(frame.Columns()))

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, config.Analysis.Excluded)
	if err != nil {
		log.Fatalf("Failed to build schema: %v", err)
	}

	fmt.Printf("Comparing %s on targets %s (%d-fold CV, %.0f%% train, scaling: %s)\n",
		strings.Join(config.Analysis.Methods, "/"),
		strings.Join(config.Analysis.Targets, ", "),
		config.Analysis.CrossValidation.Folds,
		config.Analysis.TrainFraction*100,
		config.Analysis.ScaleScope)

	runner := experiment.NewRunner(config)
	results, err := runner.Run(frame, schema)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	comparison := report.NewComparison(results)
	fmt.Println()
	fmt.Print(comparison.Render())

	if *output != "" {
		if err := experiment.ExportResults(results, *output); err != nil {
			log.Printf("Failed to export results: %v", err)
		} else {
			fmt.Printf("\nRaw results saved to: %s\n", *output)
		}
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
