package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	formskema "github.com/reoring/formskema"
)

const (
	flatQuery = "query"
	flatLines = "lines"
)

func newFlattenCmd(a *app) *cobra.Command {
	flattenCmd := &cobra.Command{
		Use:   "flatten [FILE]",
		Short: "Render a JSON object as dotted form fields",
		Long: `Render a JSON object as dotted-key form fields, the inverse of decode.
Keys are sorted; array elements become index segments. The object is read
from FILE or stdin. Repeated object keys are reported, since only the last
value survives.`,
		Args: cobra.MaximumNArgs(1),
		Example: `echo '{"user":{"name":"Ann","tags":["a","b"]}}' | formskema flatten
formskema flatten order.json --format lines`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			data, err := readFileOrStdin(cmd, name)
			if err != nil {
				return err
			}
			var tree map[string]any
			if err := json.Unmarshal(data, &tree); err != nil {
				return errors.Wrap(err, "input must be a JSON object")
			}
			if dups := formskema.DuplicateKeys(data); len(dups) > 0 {
				a.logIssues(dups)
				if a.v.GetBool("flatten.strict") {
					return errors.Wrap(dups, "input has duplicate keys")
				}
			}
			var entries []formskema.Entry
			for _, e := range formskema.Flatten(tree) {
				switch e.Value.(type) {
				case map[string]any, []any:
					// no form text stands for an empty object or sequence
					a.log.WithField("key", e.Key).Debug("skipping empty container")
					continue
				}
				entries = append(entries, e)
			}
			a.log.Debugf("flattened %d fields", len(entries))

			out := cmd.OutOrStdout()
			switch format := a.v.GetString("flatten.format"); format {
			case flatQuery:
				parts := make([]string, 0, len(entries))
				for _, e := range entries {
					parts = append(parts, url.QueryEscape(e.Key)+"="+url.QueryEscape(fmt.Sprint(e.Value)))
				}
				fmt.Fprintln(out, strings.Join(parts, "&"))
			case flatLines:
				for _, e := range entries {
					fmt.Fprintf(out, "%s=%v\n", e.Key, e.Value)
				}
			default:
				return errors.Errorf("--format must be %s or %s, got %q", flatQuery, flatLines, format)
			}
			return nil
		},
	}
	flattenCmd.Flags().String("format", flatQuery, "output format, query (urlencoded) or lines (key=value per line)")
	flattenCmd.Flags().Bool("strict", false, "fail when the object repeats a key")
	a.bind("flatten", flattenCmd.Flags().Lookup("format"), flattenCmd.Flags().Lookup("strict"))
	return flattenCmd
}
