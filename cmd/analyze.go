package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wecare/foodcheck/pkg/analyzer"
	"github.com/wecare/foodcheck/pkg/config"
	"github.com/wecare/foodcheck/pkg/formatter"
	"github.com/wecare/foodcheck/pkg/llm"
	"github.com/wecare/foodcheck/pkg/model"
	"github.com/wecare/foodcheck/pkg/product"
	"github.com/wecare/foodcheck/pkg/scoring"
)

var (
	scoringMode  string
	allergens    []string
	diets        []string
	outputFormat string
	verbose      bool
	barcode      string
	noCache      bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [PRODUCT_FILE]",
		Short: "Analyze a food product for allergens, diet compatibility and quality",
		Long: `Analyze a food product record: detect allergens, check diet compatibility,
and compute a 0-100 quality score.

The score source is resolved hierarchically: an externally supplied score wins,
then an AI-generated score, then the local scoring engine. Use --scoring to pin
a single source.

Examples:
  # Analyze a product file with your allergens
  foodcheck analyze product.json --allergens Peanuts,Dairy

  # Check diet compatibility
  foodcheck analyze product.json --diets Vegan,Keto

  # Analyze straight from OpenFoodFacts
  foodcheck analyze --barcode 3017620422003 --diets Vegetarian

  # Force the local scoring engine, machine-readable output
  foodcheck analyze product.json --scoring local -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&scoringMode, "scoring", "", "Scoring source (auto, ai, local, external)")
	cmd.Flags().StringSliceVar(&allergens, "allergens", nil, "Your allergens (e.g. Peanuts,Dairy)")
	cmd.Flags().StringSliceVar(&diets, "diets", nil, "Diets to check (e.g. Vegan,Keto)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format (human, json, yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().StringVar(&barcode, "barcode", "", "Fetch the product from OpenFoodFacts instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the local product cache")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	if len(args) == 0 && barcode == "" {
		return fmt.Errorf("either provide a product file or use --barcode")
	}

	mode, err := scoring.ParseMode(cfg.Scoring)
	if err != nil {
		return err
	}

	table := scoring.DefaultAdditiveTable()
	if cfg.TablesFile != "" {
		table, err = scoring.LoadAdditiveTable(cfg.TablesFile)
		if err != nil {
			return err
		}
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Loading product..."
	s.Start()

	var prod *model.Product
	if barcode != "" {
		prod, err = fetchProduct(cfg, barcode)
	} else {
		prod, err = product.Load(args[0])
	}
	if err != nil {
		s.Stop()
		return err
	}
	s.Stop()
	printSuccess(fmt.Sprintf("Loaded product: %s", prod.Name))

	// An AI backend is only needed when the resolver may reach the ai tier.
	var backend llm.LLM
	if mode == scoring.ModeAI || mode == scoring.ModeAuto {
		backend, err = llm.New(llm.Options{
			Provider: cfg.Provider,
			Model:    cfg.Model,
			Timeout:  cfg.Timeout(),
		})
		if err != nil {
			backend = nil
			if verbose {
				fmt.Printf("AI backend unavailable: %v\n", err)
			}
		}
	}

	s.Suffix = " Analyzing..."
	s.Start()
	a := analyzer.New(backend, table, cfg.Allergens, cfg.Diets)
	analysis, err := a.Analyze(prod, mode)
	s.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	printSuccess("Analysis complete")

	if verbose && analysis.Score != nil {
		fmt.Printf("Score produced by: %s (degraded=%v)\n", analysis.ScoreSource, analysis.Degraded)
	}

	return formatter.DisplayResults(analysis, cfg.Output)
}

// applyFlagOverrides lets explicit flags win over config-file and env values.
func applyFlagOverrides(cfg *config.Config) {
	if scoringMode != "" {
		cfg.Scoring = scoringMode
	}
	if outputFormat != "" {
		cfg.Output = outputFormat
	}
	if allergens != nil {
		cfg.Allergens = allergens
	}
	if diets != nil {
		cfg.Diets = diets
	}
}

// fetchProduct retrieves a product by barcode, going through the sqlite
// cache unless disabled.
func fetchProduct(cfg *config.Config, code string) (*model.Product, error) {
	if noCache {
		return product.NewOFFClient(cfg.Timeout()).Fetch(code)
	}

	cache, err := product.OpenCache(cfg.CachePath)
	if err != nil {
		// Cache problems should not block an online fetch.
		return product.NewOFFClient(cfg.Timeout()).Fetch(code)
	}
	defer cache.Close()

	if payload, err := cache.Get(code); err == nil {
		return product.Parse(payload)
	}

	client := product.NewOFFClient(cfg.Timeout())
	payload, err := client.FetchRaw(code)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(code, payload); err != nil && verbose {
		fmt.Printf("could not cache product: %v\n", err)
	}
	return product.Parse(payload)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}
