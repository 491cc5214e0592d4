package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/youruser/talingchan-deck/internal/cards"
)

func newFiltersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the values available for each filter category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := a.catalog(cmd.Context())
			idx := catalog.Index()
			out := cmd.OutOrStdout()
			head := color.New(color.FgCyan, color.Bold)
			for _, cat := range cards.Categories {
				head.Fprintf(out, "%s", cat)
				fmt.Fprintf(out, " (%d)\n", len(idx[cat]))
				if len(idx[cat]) > 0 {
					fmt.Fprintf(out, "  %s\n", strings.Join(idx[cat], ", "))
				}
			}
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var filters []string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog by name and filters",
		Long: `Search matches the query against Name and RuleName, ignoring case.
Filters are given as Category=value and may be repeated; values of the same
category are OR-ed, different categories are AND-ed.`,
		Example: `  deckbuilder search ราหู
  deckbuilder search --filter Type=Avatar --filter Cost=3 --filter Cost=4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := parseFilterFlags(filters)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opt.Query = args[0]
			}
			catalog := a.catalog(cmd.Context())
			found := catalog.Search(opt)
			printCards(cmd, found)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Category=value (Type, Symbol, Cost, C Color, Gem, G Color)")
	return cmd
}

// parseFilterFlags turns Category=value pairs into a selection.
func parseFilterFlags(pairs []string) (cards.FilterOptions, error) {
	opt := cards.FilterOptions{Filters: cards.Selection{}}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return opt, fmt.Errorf("invalid filter %q: want Category=value", p)
		}
		cat, ok := cards.ParseCategory(strings.TrimSpace(k))
		if !ok {
			return opt, fmt.Errorf("unknown filter category %q", k)
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return opt, fmt.Errorf("empty value for filter %q", k)
		}
		opt.Filters[cat] = append(opt.Filters[cat], v)
	}
	return opt, nil
}

func printCards(cmd *cobra.Command, found []cards.Card) {
	out := cmd.OutOrStdout()
	name := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, c := range found {
		name.Fprintf(out, "%s", c.Name)
		if c.RuleName != c.Name {
			dim.Fprintf(out, " [%s]", c.RuleName)
		}
		fmt.Fprintf(out, "  %s", c.Type)
		if cost := c.Cost.Trimmed(); cost != "" {
			fmt.Fprintf(out, "  cost %s", cost)
		}
		if bool(c.OnlyOne) {
			color.New(color.FgYellow).Fprint(out, "  Only#1")
		}
		switch {
		case c.AllowedCopies == nil:
		case *c.AllowedCopies == cards.NoCopyLimit:
			fmt.Fprint(out, "  no limit")
		default:
			fmt.Fprintf(out, "  max %d", *c.AllowedCopies)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d card(s)\n", len(found))
}
