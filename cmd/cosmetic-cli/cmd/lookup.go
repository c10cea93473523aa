package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/cosmetic-filter/internal/cosmetic"
	"github.com/bnema/cosmetic-filter/internal/filtercache"
	"github.com/bnema/cosmetic-filter/internal/hashutil"
)

var (
	lookupClasses string
	lookupIDs     string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <rules-file> <hostname>",
	Short: "Build a filter cache from a rules file and print its stylesheets for a hostname",
	Args:  cobra.ExactArgs(2),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupClasses, "classes", "", "comma-separated list of page classes to probe")
	lookupCmd.Flags().StringVar(&lookupIDs, "ids", "", "comma-separated list of page ids to probe")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(_ *cobra.Command, args []string) error {
	rulesFile, hostname := args[0], args[1]

	f, err := os.Open(rulesFile)
	if err != nil {
		return fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed while scanning rules file: %w", err)
	}

	rules, err := cosmetic.ParseBatch(lines, false)
	if err != nil {
		return fmt.Errorf("failed to parse rules: %w", err)
	}

	cache := filtercache.NewFromRules(rules, hashutil.DefaultPublicSuffixLookup{})

	fmt.Println("=== base stylesheet ===")
	fmt.Println(cache.BaseStylesheet())

	if lookupClasses != "" || lookupIDs != "" {
		classes := splitNonEmpty(lookupClasses)
		ids := splitNonEmpty(lookupIDs)
		if sheet, ok := cache.ClassIDStylesheet(classes, ids); ok {
			fmt.Println("=== class/id stylesheet ===")
			fmt.Println(sheet)
		}
	}

	fmt.Printf("=== hostname stylesheet (%s) ===\n", hostname)
	fmt.Println(cache.HostnameStylesheet(hostname))

	return nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
