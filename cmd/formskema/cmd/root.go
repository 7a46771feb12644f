package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type rootOpts struct {
	cfgFile string
	verbose bool
}

// app carries the state shared by all commands of one command tree.
type app struct {
	opts rootOpts
	v    *viper.Viper
	log  *logrus.Logger
}

var longRootCmdDescription = `formskema rebuilds nested values from dotted form keys
(user.name, items.0.sku) and derives form paths and query selections from
JSON Schema and OpenAPI documents.

Settings can come from flags, FORMSKEMA_* environment variables
(FORMSKEMA_OUTPUT, FORMSKEMA_DECODE_NO_DATES, ...) or a YAML config file.
`

// NewRootCmd builds the formskema command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:           "formskema",
		Short:         "Decode dotted-key forms and derive form paths from schemas",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.opts.cfgFile, "config", "", "config file (default is $HOME/.formskema.yaml)")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "turn on debug logging")
	flags.StringP("output", "o", formatJSON, "output format, json or yaml")
	a.bind("", flags.Lookup("output"))

	rootCmd.AddCommand(newPathsCmd(a), newSelectCmd(a), newDecodeCmd(a), newFlattenCmd(a))
	return rootCmd
}

// Execute runs the command tree. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("formskema: %v", err)
		os.Exit(1)
	}
}

// bind registers flags under section in the viper instance, so that
// "decode" + "no-dates" is read as decode.no-dates and
// FORMSKEMA_DECODE_NO_DATES.
func (a *app) bind(section string, fs ...*pflag.Flag) {
	for _, f := range fs {
		key := f.Name
		if section != "" {
			key = section + "." + f.Name
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if a.opts.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	a.v.SetEnvPrefix("FORMSKEMA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	cfg := a.opts.cfgFile
	if cfg == "" {
		home, err := homedir.Dir()
		if err != nil {
			a.log.Debugf("no home directory, skipping default config: %v", err)
			return nil
		}
		cfg = filepath.Join(home, ".formskema.yaml")
		if _, err := os.Stat(cfg); err != nil {
			return nil
		}
	}
	a.v.SetConfigFile(cfg)
	if err := a.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", cfg)
	}
	a.log.Debugf("using config file %s", a.v.ConfigFileUsed())
	return nil
}
