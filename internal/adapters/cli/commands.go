package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kirillkom/chemical-safety-registry/internal/core/ghs"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/extractor/pdftext"
)

func newCategoriesCommand(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the GHS categories known to the rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.nfpaService(cmd)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), svc.Categories())
			}
			for _, name := range svc.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as a JSON array")
	return cmd
}

func newTranslateCommand(opts *options) *cobra.Command {
	var (
		category     string
		flashPoint   float64
		boilingPoint float64
	)
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a GHS category and physical properties to an NFPA rating",
		Example: `  hazardctl translate --category "Category 2" --flash-point -4 --boiling-point 133
  hazardctl translate --category "Category 4" --flash-point 232`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.nfpaService(cmd)
			if err != nil {
				return err
			}
			var fp, bp *float64
			if cmd.Flags().Changed("flash-point") {
				fp = &flashPoint
			}
			if cmd.Flags().Changed("boiling-point") {
				bp = &boilingPoint
			}
			return printJSON(cmd.OutOrStdout(), svc.Translate(category, fp, bp))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "GHS flammable liquid category, e.g. \"Category 2\"")
	cmd.Flags().Float64Var(&flashPoint, "flash-point", 0, "flash point in °F")
	cmd.Flags().Float64Var(&boilingPoint, "boiling-point", 0, "boiling point in °F")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newExtractCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file|->",
		Short: "Extract GHS hazard data from an SDS (PDF or plain text)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			text := string(raw)
			if bytes.HasPrefix(raw, []byte("%PDF")) {
				if text, err = pdftext.TextFromPDF(raw); err != nil {
					return err
				}
			}

			info := ghs.Extract(text)
			opts.logger(cmd).Debug("extracted",
				"source", args[0],
				"hazard_statements", len(info.HazardStatements),
				"pictograms", len(info.Pictograms),
			)
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
