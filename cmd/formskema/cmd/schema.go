package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reoring/formskema/introspect"
	"github.com/reoring/formskema/openapi"
)

var schemaFlagNames = []string{"select", "document", "strict-refs", "max-depth"}

func addSchemaFlags(a *app, section string, flags *pflag.FlagSet) {
	flags.String("select", "", "JSONPath of the schema inside the document, e.g. $.components.schemas.User")
	flags.Int("document", 0, "document of a multi-document YAML file, counting from 1")
	flags.Bool("strict-refs", false, "fail on unresolvable $ref instead of treating it as any")
	flags.Int("max-depth", introspect.DefaultMaxDepth, "deepest nesting walked before a node becomes a leaf")
	for _, name := range schemaFlagNames {
		a.bind(section, flags.Lookup(name))
	}
}

// introspectFile imports a schema document and walks it.
func (a *app) introspectFile(section, path string) (introspect.Result, error) {
	opts := openapi.Options{
		Select:     a.v.GetString(section + ".select"),
		Document:   a.v.GetInt(section + ".document"),
		StrictRefs: a.v.GetBool(section + ".strict-refs"),
	}
	a.log.WithField("file", path).Debugf("importing schema with %+v", opts)
	s, diag, err := openapi.ImportFile(path, opts)
	a.logDiag(diag)
	if err != nil {
		return introspect.Result{}, errors.Wrapf(err, "failed to import %s", path)
	}
	return introspect.Introspect(s, introspect.Options{MaxDepth: a.v.GetInt(section + ".max-depth")}), nil
}

func newPathsCmd(a *app) *cobra.Command {
	pathsCmd := &cobra.Command{
		Use:   "paths FILE",
		Short: "Print the form path map of a schema",
		Long: `Print the dotted form key of every field of a JSON Schema or OpenAPI
schema. Arrays of objects are shown as {"key": ..., "element": ...} with
"{index}" standing for the element index.`,
		Args: cobra.ExactArgs(1),
		Example: `formskema paths user.schema.json
formskema paths api.yaml --select '$.components.schemas.Order' --lookup items.2.sku`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.introspectFile("paths", args[0])
			if err != nil {
				return err
			}
			lookup, _ := cmd.Flags().GetString("lookup")
			if lookup == "" {
				return a.print(cmd, res.Paths)
			}
			n, ok := res.Fields().Lookup(lookup)
			if !ok {
				return errors.Errorf("no field at %q", lookup)
			}
			return a.print(cmd, n)
		},
	}
	addSchemaFlags(a, "paths", pathsCmd.Flags())
	pathsCmd.Flags().String("lookup", "", "print only the paths under this dotted key")
	return pathsCmd
}

func newSelectCmd(a *app) *cobra.Command {
	selectCmd := &cobra.Command{
		Use:   "select FILE",
		Short: "Print the field selection map of a schema",
		Long: `Print the nested selection of a schema in the shape relational query
builders accept: true for a column and {"select": {...}} for a relation.`,
		Args: cobra.ExactArgs(1),
		Example: `formskema select user.schema.json
formskema select api.yaml --select '$.components.schemas.Order' --columns`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.introspectFile("select", args[0])
			if err != nil {
				return err
			}
			if columns, _ := cmd.Flags().GetBool("columns"); columns {
				for _, c := range res.Selection.Columns() {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			}
			return a.print(cmd, res.Selection)
		},
	}
	addSchemaFlags(a, "select", selectCmd.Flags())
	selectCmd.Flags().Bool("columns", false, "print the selected leaf paths, one per line")
	return selectCmd
}
