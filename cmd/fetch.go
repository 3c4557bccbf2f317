package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/wecare/foodcheck/pkg/config"
	"github.com/wecare/foodcheck/pkg/product"
)

func NewFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch BARCODE",
		Short: "Fetch a product record from OpenFoodFacts into the local cache",
		Long: `Retrieve a product record from OpenFoodFacts by barcode, store the raw
payload in the local cache, and print the normalized record.

Examples:
  foodcheck fetch 3017620422003`,
		Args: cobra.ExactArgs(1),
		RunE: runFetch,
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	code := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Fetching %s from OpenFoodFacts...", code)
	s.Start()

	client := product.NewOFFClient(cfg.Timeout())
	payload, err := client.FetchRaw(code)
	if err != nil {
		s.Stop()
		return err
	}
	s.Stop()

	cache, err := product.OpenCache(cfg.CachePath)
	if err == nil {
		defer cache.Close()
		if err := cache.Put(code, payload); err != nil {
			fmt.Printf("warning: could not cache product: %v\n", err)
		} else {
			printSuccess(fmt.Sprintf("Cached product %s", code))
		}
	}

	prod, err := product.Parse(payload)
	if err != nil {
		return err
	}
	if prod.Barcode == "" {
		prod.Barcode = code
	}

	out, err := json.MarshalIndent(prod, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
