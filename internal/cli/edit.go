package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/layoutcore/internal/transform"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// parseSelection builds a selection from kind:uuid[:vertex] arguments.
func parseSelection(args []string) (*types.Selection, error) {
	sel := types.NewSelection()
	for _, arg := range args {
		ref, err := types.ParseRef(arg)
		if err != nil {
			return nil, err
		}
		sel.Add(ref)
	}
	return sel, nil
}

// restrictions maps --restrict values to cursor constraints.
var restrictions = map[string]transform.RestrictFunc{
	"none": transform.RestrictNone,
	"hv":   transform.RestrictHV,
	"hv45": transform.RestrictHV45,
}

func newMoveCmd(a *app) *cobra.Command {
	var (
		dx, dy   int64
		restrict string
	)
	cmd := &cobra.Command{
		Use:   "move <ref>...",
		Short: "Move selected objects by an offset",
		Long: "Move the referenced objects by (dx, dy) nanometers. References have the\n" +
			"form kind:uuid or kind:uuid:vertex for polygon vertices and dimension\n" +
			"endpoints.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := restrictions[restrict]
			if !ok {
				return fmt.Errorf("%w: --restrict must be none, hv or hv45", errUsage)
			}
			sel, err := parseSelection(args)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				m := transform.NewMover(s.doc, sel, transform.WithMoverLogger(a.logger))
				m.Begin(types.Coord{})
				moveErr := m.UpdateCursor(types.Coord{X: dx, Y: dy}, fn)
				m.Commit()
				d := m.Delta()
				if a.jsonMode {
					if err := printJSON(cmd.OutOrStdout(), map[string]int64{"dx": d.X, "dy": d.Y}); err != nil {
						return err
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "moved %d object(s) by (%d, %d)\n", sel.Len(), d.X, d.Y)
				}
				return moveErr
			})
		},
	}
	cmd.Flags().Int64Var(&dx, "dx", 0, "x offset in nanometers")
	cmd.Flags().Int64Var(&dy, "dy", 0, "y offset in nanometers")
	cmd.Flags().StringVar(&restrict, "restrict", "none", "cursor restriction: none, hv or hv45")
	return cmd
}

func newTransformCmd(a *app, name string) *cobra.Command {
	mode := transform.Mirror
	short := "Mirror selected objects about a vertical axis"
	if name == "rotate" {
		mode = transform.Rotate90
		short = "Rotate selected objects 90° clockwise"
	}

	var cx, cy int64
	cmd := &cobra.Command{
		Use:   name + " <ref>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelection(args)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				// There is no board aggregate here; packages are expanded
				// when the design is next opened by the editor.
				expander := types.BoardExpanderFunc(func(ids []uuid.UUID) {
					a.logger.Info().Int("packages", len(ids)).Msg("packages need expansion")
				})
				eng := transform.NewEngine(s.doc,
					transform.WithBoardExpander(expander),
					transform.WithEngineLogger(a.logger),
				)
				applyErr := eng.Apply(sel, types.Coord{X: cx, Y: cy}, mode)
				if !a.jsonMode {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d object(s) about (%d, %d)\n", mode, sel.Len(), cx, cy)
				}
				return applyErr
			})
		},
	}
	cmd.Flags().Int64Var(&cx, "cx", 0, "center x in nanometers")
	cmd.Flags().Int64Var(&cy, "cy", 0, "center y in nanometers")
	return cmd
}
