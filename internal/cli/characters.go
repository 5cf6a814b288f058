package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/services"
	"github.com/dmelim/local-character-sheets/internal/schema"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all characters, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().List(cmd.Context())
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-36s  v%-4d  %-20s  %s\n",
					item.ID, item.Version, item.UpdatedAt.Local().Format("2006-01-02 15:04:05"), item.Name)
			}
			return nil
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := opts.client().Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print the full character document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := opts.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(ch, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newRenameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()

			// Read-then-write; a concurrent editor surfaces as a conflict.
			ch, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			summary, err := c.Rename(cmd.Context(), args[0], args[1], ch.Version)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %q (v%d)\n", summary.ID, summary.Name, summary.Version)
			return nil
		},
	}
}

func newSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <path>=<value> [<path>=<value>...]",
		Short: "Set sheet fields, typed per the field schema",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldSchema, err := loadSchema()
			if err != nil {
				return err
			}
			updates, err := parseFieldArgs(fieldSchema, args[1:])
			if err != nil {
				return err
			}

			c := opts.client()
			ch, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result, err := c.Update(cmd.Context(), args[0], &services.BatchedUpdateRequest{
				ExpectedVersion: ch.Version,
				Updates:         updates,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d field(s), now v%d\n", len(updates), result.Version)
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func newLongRestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "long-rest <id>",
		Short: "Apply long-rest recovery to a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.client().LongRest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "long rest applied, now v%d\n", result.Version)
			return nil
		},
	}
}

// loadSchema mirrors the server's schema setup: built-ins, optionally
// extended via SCHEMA_FILE.
func loadSchema() (*schema.Schema, error) {
	if path := os.Getenv("SCHEMA_FILE"); path != "" {
		return schema.Load(path)
	}
	return schema.Default(), nil
}

// parseFieldArgs turns path=value arguments into typed field updates using
// the schema's declared types. An empty value clears a number field.
func parseFieldArgs(fieldSchema *schema.Schema, args []string) ([]models.FieldUpdate, error) {
	updates := make([]models.FieldUpdate, 0, len(args))
	for _, arg := range args {
		path, raw, found := strings.Cut(arg, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("expected <path>=<value>, got %q", arg)
		}

		field, ok := fieldSchema.Lookup(path)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", path)
		}

		value, err := parseFieldValue(field, raw)
		if err != nil {
			return nil, err
		}
		updates = append(updates, models.FieldUpdate{Path: path, Value: value})
	}
	return updates, nil
}

func parseFieldValue(field schema.FieldDef, raw string) (any, error) {
	switch field.Type {
	case schema.FieldNumber:
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s expects a number, got %q", field.Path, raw)
		}
		return n, nil
	case schema.FieldBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s expects a boolean, got %q", field.Path, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}
