package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/cosmetic-filter/internal/scriptlet"
)

var scriptletCmd = &cobra.Command{
	Use:   "scriptlet <resources-file> <invocation>",
	Short: "Resolve a +js(...)-style scriptlet invocation against a resources catalog",
	Args:  cobra.ExactArgs(2),
	RunE:  runScriptlet,
}

func init() {
	rootCmd.AddCommand(scriptletCmd)
}

func runScriptlet(_ *cobra.Command, args []string) error {
	resourcesFile, invocation := args[0], args[1]

	f, err := os.Open(resourcesFile)
	if err != nil {
		return fmt.Errorf("failed to open resources file: %w", err)
	}
	defer f.Close()

	catalog, err := scriptlet.ParseCatalog(f)
	if err != nil {
		return fmt.Errorf("failed to parse resources file: %w", err)
	}

	body, err := catalog.GetScriptlet(invocation)
	if err != nil {
		return err
	}

	fmt.Println(body)
	return nil
}
