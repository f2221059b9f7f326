package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(storageHealthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(clubStatsCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var storageHealthCmd = &cobra.Command{
	Use:   "storage-health",
	Short: "Check connectivity to the video object store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/storage/health")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [playerID]",
	Short: "Show a player's aggregated match statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]) + "/stats")
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [playerID]",
	Short: "Show a player's match-by-match progression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]) + "/progress")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [playerID]",
	Short: "List a player's match records, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches?playerID=" + url.QueryEscape(args[0]))
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster [clubID]",
	Short: "List the members of a club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clubs/" + url.PathEscape(args[0]) + "/members")
	},
}

var clubStatsCmd = &cobra.Command{
	Use:   "club-stats [clubID]",
	Short: "Show per-player totals for a club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clubs/" + url.PathEscape(args[0]) + "/stats")
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the record processor over pending match records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/process")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(""))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
