package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/internal/properties"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// parseObject parses the kind and id arguments shared by most commands.
func parseObject(kindArg, idArg string) (types.ObjectKind, uuid.UUID, error) {
	kind, err := types.ParseObjectKind(kindArg)
	if err != nil {
		return types.KindInvalid, uuid.Nil, err
	}
	id, err := uuid.Parse(idArg)
	if err != nil {
		return types.KindInvalid, uuid.Nil, fmt.Errorf("%w: %q", types.ErrInvalidID, idArg)
	}
	return kind, id, nil
}

// nativeValue unwraps a property value for JSON output.
func nativeValue(v types.Value) any {
	switch x := v.(type) {
	case types.BoolValue:
		return bool(x)
	case types.IntValue:
		return int64(x)
	case types.TextValue:
		return string(x)
	}
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <kind> <json|->",
		Short: "Add an object to the design",
		Long:  "Add an object of the given kind. The object is read as JSON from the argument, or from stdin when the argument is \"-\".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseObjectKind(args[0])
			if err != nil {
				return err
			}
			data := []byte(args[1])
			if args[1] == "-" {
				if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}
			obj, err := document.NewObject(kind)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, obj); err != nil {
				return fmt.Errorf("%w: decode %s: %v", errUsage, kind, err)
			}

			return a.withSession(cmd, func(s *session) error {
				id, err := s.doc.Add(obj)
				if err != nil {
					return err
				}
				s.doc.Commit()
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]string{"kind": kind.String(), "id": id.String()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show the properties of an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseObject(args[0], args[1])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				if _, err := s.doc.Object(kind, id); err != nil {
					return err
				}
				reg := properties.NewRegistry(s.doc)
				name := properties.DisplayName(s.doc, kind, id)

				if a.jsonMode {
					props := make(map[string]any)
					for _, p := range properties.Supported(kind) {
						if v, err := reg.Get(kind, id, p); err == nil {
							props[p.String()] = nativeValue(v)
						}
					}
					return printJSON(cmd.OutOrStdout(), map[string]any{
						"kind":       kind.String(),
						"id":         id.String(),
						"name":       name,
						"properties": props,
					})
				}

				rows := []row{{label: "name", value: name}}
				for _, p := range properties.Supported(kind) {
					v, err := reg.Get(kind, id, p)
					if err != nil {
						continue
					}
					rows = append(rows, row{label: p.String(), value: v.String()})
				}
				printRows(cmd.OutOrStdout(), kind.String()+" "+id.String(), rows)
				return nil
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "List object ids, or object counts per kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				kind, err := types.ParseObjectKind(args[0])
				if err != nil {
					return err
				}
				ids, err := s.backend.IDs(kind)
				if err != nil {
					return err
				}
				if a.jsonMode {
					strs := make([]string, len(ids))
					for i, id := range ids {
						strs[i] = id.String()
					}
					return printJSON(out, strs)
				}
				for _, id := range ids {
					if name := properties.DisplayName(s.doc, kind, id); name != "" {
						fmt.Fprintf(out, "%s  %s\n", id, name)
						continue
					}
					fmt.Fprintln(out, id)
				}
				return nil
			}

			counts, err := s.backend.Counts()
			if err != nil {
				return err
			}
			kinds := make([]types.ObjectKind, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

			if a.jsonMode {
				m := make(map[string]int, len(counts))
				for k, n := range counts {
					m[k.String()] = n
				}
				return printJSON(out, m)
			}
			rows := make([]row, 0, len(kinds))
			for _, k := range kinds {
				rows = append(rows, row{label: k.String(), value: fmt.Sprint(counts[k])})
			}
			printRows(out, "", rows)
			return nil
		},
	}
}

func newNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <kind> <id>",
		Short: "Print the display name of an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseObject(args[0], args[1])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				fmt.Fprintln(cmd.OutOrStdout(), properties.DisplayName(s.doc, kind, id))
				return nil
			})
		},
	}
}


func newBlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block [json|-]",
		Short: "Print or replace the design's netlist block",
		Long: "Without an argument, print the block symbols resolve their components and\n" +
			"gates against. With one, replace it with the given JSON (\"-\" reads stdin).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				if len(args) == 0 {
					if s.doc.Block == nil {
						return fmt.Errorf("%w: design has no block", types.ErrNotFound)
					}
					return printJSON(cmd.OutOrStdout(), s.doc.Block)
				}

				data := []byte(args[0])
				if args[0] == "-" {
					var err error
					if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
				}
				block := types.NewBlock(uuid.Nil)
				if err := json.Unmarshal(data, block); err != nil {
					return fmt.Errorf("%w: decode block: %v", errUsage, err)
				}
				s.doc.Block = block
				s.doc.Commit()
				fmt.Fprintf(cmd.OutOrStdout(), "block %s: %d component(s)\n", block.ID, len(block.Components))
				return nil
			})
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <kind>",
		Short: "Print the JSON schema of an object kind",
		Long:  "Print the JSON schema that add accepts for objects of the given kind.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseObjectKind(args[0])
			if err != nil {
				return err
			}
			obj, err := document.NewObject(kind)
			if err != nil {
				return err
			}
			data, err := jsonschema.Reflect(obj).MarshalJSON()
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
