package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli carries the state shared by every subcommand.
type cli struct {
	cfgFile string
	v       *viper.Viper
	log     *zap.Logger
}

// newRootCmd builds the command tree.
//
// Configuration is read, highest priority first, from flags, HXKIT_*
// environment variables, the file named by --config or HXKIT_CONFIG_FILE,
// and .hxkit.yml in the current directory. Recognized keys:
//
//	key:     secret used by seal and open
//	format:  default output format for trees (json, yaml)
//	defines: name -> template form, bound before every render
func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "hxkit",
		Short: "Render hyperscript templates and decode form parameters",
		Long: `hxkit evaluates template forms written as YAML or JSON sequences and
converts between Rails-style form parameters and nested trees.

Examples:
  hxkit render page.yml                      Render a template file
  echo '["p", "hi"]' | hxkit render          Render from stdin
  hxkit params 'a[b]=1&a[c][]=2'             Decode a query string
  hxkit encode tree.yml --path /search       Build a URL from a flat tree
  hxkit serialize form.html                  Serialize the controls of a form
  hxkit seal state.yml | hxkit open          Seal and reopen hidden state`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initConfig(); err != nil {
				return err
			}
			return c.initLogger()
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is .hxkit.yml, can also use HXKIT_CONFIG_FILE env var)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); logging is off when empty")
	root.PersistentFlags().StringP("format", "f", "json", "output format for trees (json, yaml)")
	_ = c.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("format", root.PersistentFlags().Lookup("format"))

	root.AddCommand(
		newRenderCmd(c),
		newParamsCmd(c),
		newEncodeCmd(c),
		newSerializeCmd(c),
		newSealCmd(c),
		newOpenCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) initConfig() error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else if envConfigFile := os.Getenv("HXKIT_CONFIG_FILE"); envConfigFile != "" {
		c.v.SetConfigFile(envConfigFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigType("yaml")
		c.v.SetConfigName(".hxkit")
	}

	c.v.SetEnvPrefix("HXKIT")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		// A missing default file is fine; an explicit one must exist.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func (c *cli) initLogger() error {
	level := c.v.GetString("log-level")
	if level == "" {
		return nil
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	c.log = logger
	if used := c.v.ConfigFileUsed(); used != "" {
		c.log.Debug("using config file", zap.String("path", used))
	}
	return nil
}
