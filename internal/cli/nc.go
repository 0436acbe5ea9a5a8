package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/layoutcore/internal/netlist"
)

func newNCCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nc <set|clear> <ref>...",
		Short: "Mark or unmark unconnected pins of symbols as not connected",
		Long: "set adds a not-connected entry for every pin of the referenced symbols\n" +
			"that has no connection. clear removes the not-connected entries and\n" +
			"leaves real connections alone.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := netlist.ParseOp(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			sel, err := parseSelection(args[1:])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				if !netlist.CanApply(s.doc, sel, op) {
					a.logger.Info().Str("op", op.String()).Msg("nothing to change")
				}
				n, applyErr := netlist.Apply(s.doc, sel, op)
				if a.jsonMode {
					if err := printJSON(cmd.OutOrStdout(), map[string]any{"op": op.String(), "pins": n}); err != nil {
						return err
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s nc: %d pin(s)\n", op, n)
				}
				return applyErr
			})
		},
	}
}
