package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/export"
	"github.com/youruser/talingchan-deck/internal/util"
	"go.uber.org/zap"
)

// errInvalidDeck is returned after the problems have been printed.
var errInvalidDeck = errors.New("deck list has errors")

// loadDeck parses path and replays it through the legality engine.
func (a *app) loadDeck(ctx context.Context, path string) (*deck.ListFile, *deck.Deck, []error, error) {
	lf, err := deck.ParseListFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	catalog := a.catalog(ctx)
	d, errs := lf.Build(a.cfg.DeckRules(), catalog.Lookup)
	return lf, d, errs, nil
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [deck.yaml]",
		Short: "Check a deck list against the construction rules",
		Long: `Validate replays every card of the list through the deck rules in order
and reports each rejected add, then whether the deck is complete.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, d, errs, err := a.loadDeck(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Validation Results:")
			fmt.Fprintln(out, "-------------------")

			snap := export.NewSnapshot(lf.Name, lf.Player, d)
			fmt.Fprintf(out, "Main deck: %d/%d  Life deck: %d/%d\n",
				snap.MainTotal(), snap.MainLimit, len(snap.Life), snap.LifeLimit)

			if len(errs) > 0 {
				color.New(color.FgRed).Fprintf(out, "❌ Deck '%s' has %d error(s):\n", args[0], len(errs))
				for i, e := range errs {
					fmt.Fprintf(out, "%d. %s\n", i+1, e)
				}
				return errInvalidDeck
			}
			color.New(color.FgGreen).Fprintf(out, "✅ Deck '%s' follows the construction rules.\n", args[0])

			if err := export.ValidateTournament(snap); err != nil {
				fmt.Fprintln(out, "\nWarnings:")
				fmt.Fprintf(out, "1. not tournament ready: %s\n", err)
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var deckName, player string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a deck list as text, an image or a tournament sheet",
	}
	cmd.PersistentFlags().StringVar(&deckName, "deck-name", "", "override the deck name from the list")
	cmd.PersistentFlags().StringVar(&player, "player", "", "override the player name from the list")

	run := func(gen func(context.Context, export.Snapshot) (*export.Artifact, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			lf, d, errs, err := a.loadDeck(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				for _, e := range errs {
					color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), e)
				}
				return errInvalidDeck
			}
			if deckName != "" {
				lf.Name = deckName
			}
			if player != "" {
				lf.Player = player
			}
			artifact, err := gen(cmd.Context(), export.NewSnapshot(lf.Name, lf.Player, d))
			if err != nil {
				return err
			}
			path, err := util.WriteFile(a.cfg.OutputDir, artifact.FileName, artifact.Data)
			if err != nil {
				return err
			}
			a.log.Debug("artifact written", zap.String("path", path), zap.Int("bytes", len(artifact.Data)))
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "text [deck.yaml]",
			Short: "Write the plain text list",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(_ context.Context, s export.Snapshot) (*export.Artifact, error) {
				return export.TextArtifact(s), nil
			}),
		},
		&cobra.Command{
			Use:   "image [deck.yaml]",
			Short: "Render the deck list to PNG",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s export.Snapshot) (*export.Artifact, error) {
				r := export.NewImageRenderer(util.NewHTTPClient(a.cfg.HTTP.CatalogTimeout.Duration), a.log)
				return r.Render(ctx, s)
			}),
		},
		&cobra.Command{
			Use:   "tournament [deck.yaml]",
			Short: "Request the tournament spreadsheet from the card service",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s export.Snapshot) (*export.Artifact, error) {
				c := export.NewTournamentClient(a.cfg.APIURL, a.cfg.HTTP.ExportTimeout.Duration, a.log)
				return c.Generate(ctx, s)
			}),
		},
	)
	return cmd
}
