package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/config"
	"github.com/youruser/talingchan-deck/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// options holds the persistent flags.
type options struct {
	apiURL    string
	dataDir   string
	outputDir string
	debug     bool
}

// app is the state shared by the subcommands once flags are parsed.
type app struct {
	opts options
	cfg  *config.Config
	log  *zap.Logger
}

// NewRootCmd builds the deckbuilder command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "deckbuilder",
		Short: "Build and check Battle of Talingchan decks",
		Long: `deckbuilder browses the card catalog, checks deck lists against the
construction rules and exports them as text, an image or a tournament sheet.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.apiURL, "api-url", "", "card service base URL (overrides config and "+config.EnvAPIURL+")")
	f.StringVar(&a.opts.dataDir, "data-dir", "", "read the catalog from cards.csv in this directory instead of the card service")
	f.StringVarP(&a.opts.outputDir, "output", "o", "", "directory for exported files")
	f.BoolVar(&a.opts.debug, "debug", false, "verbose logging")

	root.AddCommand(
		newFiltersCmd(a),
		newSearchCmd(a),
		newValidateCmd(a),
		newExportCmd(a),
		newMCPCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.opts.apiURL != "" {
		cfg.APIURL = a.opts.apiURL
	}
	if a.opts.dataDir != "" {
		cfg.DataDir = a.opts.dataDir
	}
	if a.opts.outputDir != "" {
		cfg.OutputDir = a.opts.outputDir
	}
	a.cfg = cfg

	log, err := logging.New(a.opts.debug || cfg.Debug)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// catalog loads the catalog synchronously. A failed load yields an empty
// catalog, the same as the server.
func (a *app) catalog(ctx context.Context) *cards.Catalog {
	src, closeSrc := a.cfg.CatalogSource(a.cfg.DataDir, a.log)
	defer closeSrc()
	c := cards.NewCatalog()
	c.Load(ctx, src, a.log)
	return c
}
