package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/openapi"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// print writes v to the command output in the configured format.
func (a *app) print(cmd *cobra.Command, v any) error {
	var (
		out []byte
		err error
	)
	switch format := a.v.GetString("output"); format {
	case formatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal json")
		}
		out = append(out, '\n')
	case formatYAML:
		out, err = yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal yaml")
		}
	default:
		return errors.Errorf("output format must be %s or %s, got %q", formatJSON, formatYAML, format)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// readInput returns the first argument, or the whole of stdin when there
// is none or it is "-". A trailing newline is dropped.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "failed to read stdin")
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// readFileOrStdin reads the named file, or stdin for "" and "-".
func readFileOrStdin(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return b, errors.Wrap(err, "failed to read stdin")
	}
	b, err := os.ReadFile(name)
	return b, errors.Wrapf(err, "failed to read %s", name)
}

// logIssues logs each Issue of err as a warning. It reports false when err
// is not made of Issues.
func (a *app) logIssues(err error) bool {
	iss, ok := formskema.AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		a.log.WithField("code", it.Code).WithField("key", it.Path).Warn(it.Message)
	}
	return true
}

func (a *app) logDiag(d openapi.Diag) {
	if d == nil || !d.HasWarnings() {
		return
	}
	for _, w := range d.Warnings() {
		a.log.Warn(w)
	}
}
