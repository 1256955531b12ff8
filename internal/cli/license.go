package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/creditline/internal/credit"
)

// licenseCmd represents the license command
var licenseCmd = &cobra.Command{
	Use:   "license <url>...",
	Short: "Print the short name of license URLs",
	Long: `License prints the human-readable name creditline uses for each license
URL, one per line. Creative Commons and Free Art License URLs get short
names such as "CC BY-SA 3.0 (SE)"; anything else is printed unchanged.

Example:
  creditline license http://creativecommons.org/licenses/by-sa/3.0/se/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, url := range args {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), credit.ResolveLicenseName(url)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(licenseCmd)
}
