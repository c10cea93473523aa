package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/cosmetic-filter/internal/cosmetic"
)

var parseDebug bool

var parseCmd = &cobra.Command{
	Use:   "parse <rules-file>",
	Short: "Parse a cosmetic filter list and print per-line accept/reject stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseDebug, "keep-raw-line", false, "retain each rule's original source line")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	var total, accepted, rejected, skippedBlank int
	rejectReasons := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		total++
		if line == "" {
			skippedBlank++
			continue
		}
		if _, err := cosmetic.Parse(line, parseDebug); err != nil {
			rejected++
			rejectReasons[err.Error()]++
			continue
		}
		accepted++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed while scanning rules file: %w", err)
	}

	fmt.Printf("lines: %d  blank: %d  accepted: %d  rejected: %d\n", total, skippedBlank, accepted, rejected)
	for reason, count := range rejectReasons {
		fmt.Printf("  %4d  %s\n", count, reason)
	}
	return nil
}
