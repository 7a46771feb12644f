package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	formskema "github.com/reoring/formskema"
)

const (
	numbersFloat   = "float"
	numbersLiteral = "literal"
)

func newDecodeCmd(a *app) *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode [QUERY]",
		Short: "Expand an urlencoded form into a nested value",
		Long: `Expand an application/x-www-form-urlencoded form into nested objects and
arrays. Numbers, booleans and ISO-8601 dates are coerced unless disabled;
phone-number-like values stay strings. The form is read from the argument or
from stdin.`,
		Args: cobra.MaximumNArgs(1),
		Example: `formskema decode 'user.name=Ann&user.age=31&tags=a&tags=b'
echo -n 'items.0.sku=A1&items.1.sku=B2' | formskema decode -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, err := a.decodeOptions()
			if err != nil {
				return err
			}
			pairs, perr := formskema.ParseQuery(query)
			tree, err := formskema.DecodeForm(pairs, opts)
			for _, e := range []error{perr, err} {
				if e == nil {
					continue
				}
				if !a.logIssues(e) {
					return errors.Wrap(e, "failed to decode form")
				}
				if a.v.GetBool("decode.strict") {
					return errors.Wrap(e, "form has structural issues")
				}
			}
			return a.print(cmd, tree)
		},
	}

	flags := decodeCmd.Flags()
	flags.Bool("keep-empty", false, "keep empty scalar values as \"\" instead of dropping the key")
	flags.Bool("keep-empty-in-seq", false, "keep empty strings inside repeated fields")
	flags.Bool("no-numbers", false, "do not coerce numeric strings")
	flags.Bool("no-booleans", false, "do not coerce \"true\" and \"false\"")
	flags.Bool("no-dates", false, "do not coerce ISO-8601 dates")
	flags.String("numbers", numbersFloat, "number representation, float or literal (keeps the digits as written)")
	flags.Bool("overwrite", false, "let a later key replace a conflicting container instead of reporting it")
	flags.Int("max-index", formskema.DefaultMaxArrayIndex, "largest accepted array index")
	flags.Bool("strict", false, "fail when the form has structural issues")
	for _, name := range []string{"keep-empty", "keep-empty-in-seq", "no-numbers", "no-booleans", "no-dates", "numbers", "overwrite", "max-index", "strict"} {
		a.bind("decode", flags.Lookup(name))
	}
	return decodeCmd
}

func (a *app) decodeOptions() (formskema.Options, error) {
	opts := formskema.Options{
		KeepEmptyScalarString:     a.v.GetBool("decode.keep-empty"),
		KeepEmptyStringInSequence: a.v.GetBool("decode.keep-empty-in-seq"),
		DisableNumbers:            a.v.GetBool("decode.no-numbers"),
		DisableBooleans:           a.v.GetBool("decode.no-booleans"),
		DisableDates:              a.v.GetBool("decode.no-dates"),
		MaxArrayIndex:             a.v.GetInt("decode.max-index"),
	}
	switch n := a.v.GetString("decode.numbers"); n {
	case numbersFloat:
		opts.NumberMode = formskema.NumberFloat64
	case numbersLiteral:
		opts.NumberMode = formskema.NumberJSONNumber
	default:
		return opts, errors.Errorf("--numbers must be %s or %s, got %q", numbersFloat, numbersLiteral, n)
	}
	if a.v.GetBool("decode.overwrite") {
		opts.OnConflict = formskema.ConflictOverwrite
	}
	a.log.Debugf("decode options: %+v", opts)
	return opts, nil
}
