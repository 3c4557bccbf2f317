package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/wecare/foodcheck/pkg/model"
)

// DisplayResults formats and displays the analysis results
func DisplayResults(analysis *model.Analysis, format string) error {
	switch format {
	case "json":
		return displayJSON(analysis)
	case "yaml":
		return displayYAML(analysis)
	case "human":
		fallthrough
	default:
		displayHuman(analysis)
	}
	return nil
}

func displayJSON(analysis *model.Analysis) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(analysis *model.Analysis) error {
	output, err := yaml.Marshal(analysis)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(analysis *model.Analysis) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Println()
	cyan.Printf("🍎 %s", analysis.Product)
	if analysis.Brand != "" {
		fmt.Printf(" — %s", analysis.Brand)
	}
	fmt.Println()
	fmt.Println()

	// Allergens
	yellow.Println("⚠️  ALLERGENS:")
	if len(analysis.AllergensAnalysis.DetectedAllergens) == 0 {
		fmt.Println("   No allergens detected")
	} else {
		userPresent := make(map[string]bool)
		for _, a := range analysis.AllergensAnalysis.UserAllergensPresent {
			userPresent[strings.ToLower(a)] = true
		}
		for _, allergen := range analysis.AllergensAnalysis.DetectedAllergens {
			marker := "  "
			if userPresent[strings.ToLower(allergen)] {
				marker = color.RedString("⚠️")
			}
			fmt.Printf("   %s %s\n", marker, allergen)
		}
		if len(analysis.AllergensAnalysis.UserAllergensPresent) > 0 {
			red.Printf("   WARNING: product contains allergens you declared: %s\n",
				strings.Join(analysis.AllergensAnalysis.UserAllergensPresent, ", "))
		}
	}
	fmt.Println()

	// Diets
	if len(analysis.DietCompatibility) > 0 {
		cyan.Println("🥗 DIET COMPATIBILITY:")
		for _, diet := range analysis.DietCompatibility {
			status := color.GreenString("✓ compatible")
			if !diet.Compatible {
				status = color.RedString("✗ not compatible")
			}
			fmt.Printf("   %s: %s\n", diet.Diet, status)
			fmt.Printf("      %s\n", diet.Reason)
		}
		fmt.Println()
	}

	// Score
	if analysis.Score != nil {
		scoreColor := categoryColor(analysis.Score.Category)
		scoreColor.Printf("📊 QUALITY SCORE: %d/100 (%s)\n", analysis.Score.Total, analysis.Score.Category)
		fmt.Printf("   Nutrition: %d/100   Additives: %d/100\n",
			analysis.Score.NutritionScore, analysis.Score.AdditivesScore)
		if analysis.ScoreSource != "" {
			fmt.Printf("   Source: %s\n", analysis.ScoreSource)
		}
		if analysis.Degraded {
			yellow.Println("   Note: a preferred scoring source failed, this score came from a fallback")
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func categoryColor(category string) *color.Color {
	switch strings.ToLower(category) {
	case "excellent":
		return color.New(color.FgGreen, color.Bold)
	case "good":
		return color.New(color.FgGreen)
	case "average":
		return color.New(color.FgYellow)
	case "low quality":
		return color.New(color.FgRed)
	case "very low quality":
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}
