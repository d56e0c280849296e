package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	apiURLFlag  = "api-url"
	patternFlag = "pattern"
	sessionFlag = "session"

	defaultAPIURL = "http://localhost:3333"
)

var apiFlags = map[string]cobraflags.Flag{
	apiURLFlag: &cobraflags.StringFlag{
		Name:  apiURLFlag,
		Value: "",
		Usage: "Backend API URL (default: $API_URL or " + defaultAPIURL + ")",
	},
}

var seedFlags = map[string]cobraflags.Flag{
	patternFlag: &cobraflags.StringFlag{
		Name:  patternFlag,
		Value: "TTFTFFTTT",
		Usage: "One meal per character: T inside the diet, F outside",
	},
}

var metricsFlags = map[string]cobraflags.Flag{
	sessionFlag: &cobraflags.StringFlag{
		Name:  sessionFlag,
		Value: "",
		Usage: "sessionId cookie value to read metrics for (required)",
	},
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simulator",
		Short: "Development tool that drives the daily diet API",
		Long: `Simulator creates users and meals through the HTTP API and reads back metrics.

Examples:
  # Create a user and nine meals in a fresh session, then print metrics
  simulator seed

  # Use a custom diet pattern
  simulator seed --pattern TTTFTT

  # Print metrics for an existing session
  simulator metrics --session 3f0c...`,
		SilenceUsage: true,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a user and a pattern of meals in a new session",
		RunE:  seedCommand,
	}
	cobraflags.RegisterMap(seedCmd, apiFlags)
	cobraflags.RegisterMap(seedCmd, seedFlags)

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print meal metrics for a session",
		RunE:  metricsCommand,
	}
	cobraflags.RegisterMap(metricsCmd, apiFlags)
	cobraflags.RegisterMap(metricsCmd, metricsFlags)

	rootCmd.AddCommand(seedCmd, metricsCmd)
	return rootCmd
}

func apiURL() string {
	if u := apiFlags[apiURLFlag].GetString(); u != "" {
		return strings.TrimRight(u, "/")
	}
	if u := os.Getenv("API_URL"); u != "" {
		return strings.TrimRight(u, "/")
	}
	return defaultAPIURL
}

// parsePattern turns a string like "TTF" into diet flags.
func parsePattern(pattern string) ([]bool, error) {
	pattern = strings.ToUpper(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil, fmt.Errorf("pattern must not be empty")
	}

	flags := make([]bool, 0, len(pattern))
	for i, c := range pattern {
		switch c {
		case 'T':
			flags = append(flags, true)
		case 'F':
			flags = append(flags, false)
		default:
			return nil, fmt.Errorf("invalid character %q at position %d, want T or F", c, i)
		}
	}
	return flags, nil
}

func seedCommand(_ *cobra.Command, _ []string) error {
	pattern, err := parsePattern(seedFlags[patternFlag].GetString())
	if err != nil {
		return err
	}

	client, err := NewAPIClient(apiURL(), "")
	if err != nil {
		return err
	}

	fmt.Println("=== Daily Diet Simulator: Seed ===")
	fmt.Println()

	fmt.Print("Creating user... ")
	user, err := client.CreateUser("DietUser")
	if err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Printf("OK (user: %s)\n", user.Name)

	fmt.Printf("Creating %d meals:\n", len(pattern))
	for i, inDiet := range pattern {
		meal, err := client.CreateMeal(fmt.Sprintf("Meal %d", i+1), inDiet, user.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  [%d] %s (in diet: %t)\n", i+1, meal.ID, meal.BelongsToDiet)
	}

	fmt.Println()
	fmt.Printf("Session: %s\n", client.SessionID())

	metrics, err := client.GetMetrics()
	if err != nil {
		return err
	}
	printMetrics(metrics)
	return nil
}

func metricsCommand(_ *cobra.Command, _ []string) error {
	sessionID := metricsFlags[sessionFlag].GetString()
	if sessionID == "" {
		return fmt.Errorf("--%s is required", sessionFlag)
	}

	client, err := NewAPIClient(apiURL(), sessionID)
	if err != nil {
		return err
	}

	metrics, err := client.GetMetrics()
	if err != nil {
		return err
	}
	printMetrics(metrics)
	return nil
}

func printMetrics(m *Metrics) {
	fmt.Println("=== Metrics ===")
	fmt.Printf("  Total meals:          %d\n", m.TotalMeals)
	fmt.Printf("  Inside the diet:      %d\n", m.InsideDietMeals)
	fmt.Printf("  Outside the diet:     %d\n", m.NotInsideDietMeals)
	fmt.Printf("  Best diet sequence:   %d\n", m.BestSequenceOfMeals)
}
