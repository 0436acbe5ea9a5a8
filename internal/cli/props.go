package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/layoutcore/internal/properties"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id> <property>",
		Short: "Read one property of an object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseObject(args[0], args[1])
			if err != nil {
				return err
			}
			prop, err := types.ParsePropertyID(args[2])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				v, err := properties.NewRegistry(s.doc).Get(kind, id, prop)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{
						"property": prop.String(),
						"kind":     v.Kind().String(),
						"value":    nativeValue(v),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

// assignment is one property=value argument of set.
type assignment struct {
	prop types.PropertyID
	raw  string
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: expected property=value, got %q", errUsage, arg)
		}
		prop, err := types.ParsePropertyID(name)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment{prop: prop, raw: raw})
	}
	return out, nil
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <kind> <id> <property>=<value>...",
		Short: "Write properties of an object",
		Long: "Write one or more properties of an object. All assignments are applied in\n" +
			"one property transaction, so the design is reported changed once.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseObject(args[0], args[1])
			if err != nil {
				return err
			}
			assignments, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				reg := properties.NewRegistry(s.doc)
				tx := s.doc.BeginPropertyTransaction()
				defer tx.Close()

				var errs []error
				for _, as := range assignments {
					if err := setFromString(reg, kind, id, as); err != nil {
						errs = append(errs, fmt.Errorf("%s: %w", as.prop, err))
					}
				}
				return errors.Join(errs...)
			})
		},
	}
}

// setFromString parses raw as the kind of value the property currently
// holds and writes it.
func setFromString(reg *properties.Registry, kind types.ObjectKind, id uuid.UUID, as assignment) error {
	current, err := reg.Get(kind, id, as.prop)
	if err != nil {
		return err
	}
	v, err := types.ParseValue(current.Kind(), as.raw)
	if err != nil {
		return err
	}
	return reg.Set(kind, id, as.prop, v)
}

func newMetaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "meta <kind> <id> <property>",
		Short: "Show whether a property is settable and which layers it accepts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseObject(args[0], args[1])
			if err != nil {
				return err
			}
			prop, err := types.ParsePropertyID(args[2])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				meta, err := properties.NewRegistry(s.doc).Meta(kind, id, prop)
				if err != nil && !errors.Is(err, types.ErrPropertyUnsupported) {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{
						"property": prop.String(),
						"settable": meta.Settable,
						"layers":   meta.Layers,
					})
				}
				rows := []row{{label: "settable", value: fmt.Sprint(meta.Settable)}}
				for _, l := range meta.Layers {
					rows = append(rows, row{label: fmt.Sprintf("layer %d", l.ID), value: l.Name})
				}
				printRows(cmd.OutOrStdout(), prop.String(), rows)
				return nil
			})
		},
	}
}
