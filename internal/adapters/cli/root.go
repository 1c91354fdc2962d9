package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kirillkom/chemical-safety-registry/internal/core/nfpa"
	"github.com/kirillkom/chemical-safety-registry/internal/core/usecase"
	"github.com/kirillkom/chemical-safety-registry/internal/observability/logging"
)

type options struct {
	rulesPath string
	logLevel  string
}

// NewRootCommand builds hazardctl. Results go to out, logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "hazardctl",
		Short: "Extract GHS hazard data and translate it to NFPA 704 ratings",
		Long: `hazardctl runs the registry's hazard logic offline.

It extracts GHS hazard data from SDS text or PDF files and translates
GHS flammable liquid categories to NFPA 704 flammability ratings using
the embedded rule table or one supplied with --rules.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&opts.rulesPath, "rules", "", "GHS to NFPA rule table (YAML or JSON); embedded table when empty")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(
		newCategoriesCommand(opts),
		newTranslateCommand(opts),
		newExtractCommand(opts),
	)
	return root
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewJSONLoggerTo(cmd.ErrOrStderr(), "hazardctl", o.logLevel)
}

func (o *options) nfpaService(cmd *cobra.Command) (*usecase.NFPAUseCase, error) {
	tr, err := nfpa.Load(o.rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	o.logger(cmd).Debug("rules_loaded", "path", o.rulesPath, "categories", len(tr.Categories()))
	return usecase.NewNFPAUseCase(tr, nil), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
