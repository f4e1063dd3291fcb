package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/sweeper"
)

var rootCmd = &cobra.Command{
	Use:     "sweeper",
	Short:   "Run parameter sweeps of a graph-partitioning program",
	Version: sweeper.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage: true, // don't print help when subcommands return an error
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "configuration file URL (YAML or JSON)")
	flags.Int("capacity", 0, "maximum number of trials running at once")
	flags.String("program", "", "path to the partitioning program")
	flags.String("data-root", "", "directory holding <dataset>.txt files")
	flags.String("result-dir", "", "directory receiving one output file per trial")
	flags.String("summary", "", "summary CSV URL written by aggregate")
	flags.String("store", "", "outcome store URL; empty keeps outcomes in memory")
	flags.Duration("timeout", 0, "wall-clock budget of a single trial")
	flags.Duration("kill-grace", 0, "delay between SIGTERM and SIGKILL on timeout")
	flags.Bool("tracing", false, "write OpenTelemetry spans")
	flags.String("tracing-file", "", "span output file; stdout when empty")

	viper.BindPFlags(flags)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAggregateCmd())
	rootCmd.AddCommand(newProbeCmd())
}

func initConfig() {
	viper.SetEnvPrefix("SWEEPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// loadConfig reads the configuration file, if any, and applies flag and
// environment overrides on top of it.
func loadConfig(ctx context.Context) (*sweeper.Config, error) {
	var err error
	config := sweeper.DefaultConfig()
	if URL := viper.GetString("config"); URL != "" {
		if config, err = sweeper.LoadConfig(ctx, URL); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("capacity") {
		config.Gate.Capacity = viper.GetInt("capacity")
	}
	if viper.IsSet("program") {
		config.Supervisor.Program = viper.GetString("program")
	}
	if viper.IsSet("data-root") {
		config.Supervisor.DataRoot = viper.GetString("data-root")
	}
	if viper.IsSet("result-dir") {
		config.Sink.ResultDir = viper.GetString("result-dir")
	}
	if viper.IsSet("summary") {
		config.Sink.SummaryURL = viper.GetString("summary")
	}
	if viper.IsSet("store") {
		config.Store.URL = viper.GetString("store")
	}
	if viper.IsSet("timeout") {
		if config.Supervisor.Timeout, err = durationSetting("timeout"); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("kill-grace") {
		if config.Supervisor.KillGrace, err = durationSetting("kill-grace"); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("tracing") {
		config.Tracing.Enabled = viper.GetBool("tracing")
	}
	if viper.IsSet("tracing-file") {
		config.Tracing.OutputFile = viper.GetString("tracing-file")
	}
	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// durationSetting reads key as a Go duration; a bare number is taken as seconds.
func durationSetting(key string) (time.Duration, error) {
	value := strings.TrimSpace(viper.GetString(key))
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return duration, nil
}

func newService(ctx context.Context, options ...sweeper.Option) (*sweeper.Service, error) {
	config, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return sweeper.New(append([]sweeper.Option{sweeper.WithConfig(config)}, options...)...)
}
