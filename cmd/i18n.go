package cmd

import (
	"fmt"
	"strings"

	"parley/core/i18n"

	"github.com/spf13/cobra"
)

var (
	i18nDir  string
	i18nBase string
)

var i18nCmd = &cobra.Command{
	Use:   "i18n",
	Short: "Locale catalog maintenance",
}

var i18nCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report missing, extra and empty keys per locale",
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := i18n.Check(i18nDir, i18nBase)
		if err != nil {
			return err
		}

		dirty := false
		for _, r := range reports {
			if r.Clean() {
				fmt.Printf("%s: ok\n", r.Locale)
				continue
			}
			dirty = true
			fmt.Printf("%s:\n", r.Locale)
			if len(r.Missing) > 0 {
				fmt.Printf("  missing (%d): %s\n", len(r.Missing), strings.Join(r.Missing, ", "))
			}
			if len(r.Extra) > 0 {
				fmt.Printf("  extra (%d): %s\n", len(r.Extra), strings.Join(r.Extra, ", "))
			}
			if len(r.Empty) > 0 {
				fmt.Printf("  empty (%d): %s\n", len(r.Empty), strings.Join(r.Empty, ", "))
			}
		}
		if dirty {
			return fmt.Errorf("locale catalogs diverge from base locale %q", i18nBase)
		}
		return nil
	},
}

var i18nFillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Backfill missing keys from the base locale",
	RunE: func(cmd *cobra.Command, args []string) error {
		filled, err := i18n.Fill(i18nDir, i18nBase)
		if err != nil {
			return err
		}
		if len(filled) == 0 {
			fmt.Println("All catalogs are complete.")
			return nil
		}
		for locale, count := range filled {
			fmt.Printf("%s: filled %d keys (marked %q)\n", locale, count, strings.TrimSpace(i18n.FillMarker))
		}
		return nil
	},
}

func init() {
	i18nCmd.PersistentFlags().StringVar(&i18nDir, "dir", "locales", "directory containing per-locale YAML catalogs")
	i18nCmd.PersistentFlags().StringVar(&i18nBase, "base", "en", "base locale the others are compared against")
	i18nCmd.AddCommand(i18nCheckCmd)
	i18nCmd.AddCommand(i18nFillCmd)
	rootCmd.AddCommand(i18nCmd)
}
