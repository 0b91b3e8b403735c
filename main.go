package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/b97tsk/beaconzone/input"
	"github.com/b97tsk/beaconzone/zone"
)

const (
	_defaultInput   = "input.txt"
	_defaultRow     = 2_000_000
	_defaultBound   = 4_000_000
	_defaultWorkers = 1
	_configName     = "beaconzone"
	_envPrefix      = "BEACONZONE"
)

type _Query int

const (
	_QueryCount _Query = 1 << iota
	_QueryGap
)

type (
	_Report struct {
		Count *_CountReport `yaml:"count,omitempty"`
		Gap   *_GapReport   `yaml:"gap,omitempty"`
	}

	_CountReport struct {
		Row      int64 `yaml:"row"`
		Excluded int64 `yaml:"excluded"`
	}

	_GapReport struct {
		Bound     int64 `yaml:"bound"`
		X         int64 `yaml:"x"`
		Y         int64 `yaml:"y"`
		Frequency int64 `yaml:"frequency"`
	}
)

func main() {
	if err := _execute(context.Background(), _newRootCommand()); err != nil {
		os.Exit(1)
	}
}

// _execute runs cmd and reports any error on its stderr, including the
// ones cobra raises before a query starts.
func _execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fprintf(cmd.ErrOrStderr(), "beaconzone: %v\n", err)
	}
	return err
}

func _newRootCommand() *cobra.Command {
	v := viper.New()

	var configFile string

	root := &cobra.Command{
		Use:           "beaconzone",
		Short:         "Find where sensors leave room for an undetected beacon",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return _loadConfig(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return _run(cmd, v, _QueryCount|_QueryGap)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./"+_configName+".yaml)")
	flags.StringP("input", "f", _defaultInput, "sensor reports (.txt or .yaml)")
	flags.Int64P("row", "r", _defaultRow, "row to count excluded cells on")
	flags.Int64P("bound", "b", _defaultBound, "upper bound of the search square")
	flags.IntP("workers", "w", _defaultWorkers, "number of goroutines scanning rows")
	flags.String("cache", "", "file to keep results in between runs")
	flags.StringP("output", "o", "text", "output format (text or yaml)")
	flags.BoolP("progress", "p", false, "show search progress")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "count",
			Short: "Count cells on a row that cannot hold a beacon",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return _run(cmd, v, _QueryCount)
			},
		},
		&cobra.Command{
			Use:   "gap",
			Short: "Locate the uncovered cell and print its tuning frequency",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return _run(cmd, v, _QueryGap)
			},
		},
		&cobra.Command{
			Use:   "solve",
			Short: "Run both queries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return _run(cmd, v, _QueryCount|_QueryGap)
			},
		},
	)

	return root
}

func _loadConfig(v *viper.Viper, configFile string) error {
	v.SetEnvPrefix(_envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(_configName)
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errorf("loading config: %w", err)
	}
	return nil
}

func _run(cmd *cobra.Command, v *viper.Viper, queries _Query) error {
	stderr := cmd.ErrOrStderr()
	logger := _newLogger(v.GetString("log-level"), v.GetString("log-format"), stderr)

	output := strings.ToLower(v.GetString("output"))
	if output != "text" && output != "yaml" {
		return errorf("unknown output format %q", output)
	}

	name := v.GetString("input")
	ds, err := input.Load(name)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		"input", name,
		"sensors", len(ds.Sensors),
		"checksum", sprintf("%08x", ds.Checksum),
	)

	cache, err := _openResultCache(v.GetString("cache"))
	if err != nil {
		logger.Warn("discarding result cache", "cache", v.GetString("cache"), "err", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("saving result cache", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var report _Report

	if queries&_QueryCount != 0 {
		row := v.GetInt64("row")
		key := _CacheKey{Checksum: ds.Checksum, Query: "count", Param: row}
		value, ok := cache.Get(key, 1)
		if !ok {
			value = []int64{zone.CountExcluded(ds.Sensors, row)}
			cache.Put(key, value)
		}
		logger.Debug("count done", "row", row, "cached", ok)
		report.Count = &_CountReport{Row: row, Excluded: value[0]}
	}

	if queries&_QueryGap != 0 {
		bound := v.GetInt64("bound")
		key := _CacheKey{Checksum: ds.Checksum, Query: "gap", Param: bound}
		value, ok := cache.Get(key, 2)
		if !ok {
			p, err := _search(ctx, ds.Sensors, bound, v, stderr, logger)
			if err != nil {
				return err
			}
			value = []int64{p.X, p.Y}
			cache.Put(key, value)
		}
		p := zone.Point{X: value[0], Y: value[1]}
		logger.Debug("search done", "bound", bound, "x", p.X, "y", p.Y, "cached", ok)
		report.Gap = &_GapReport{Bound: bound, X: p.X, Y: p.Y, Frequency: zone.Frequency(p)}
	}

	return _writeReport(cmd.OutOrStdout(), output, &report)
}

func _search(ctx context.Context, sensors []zone.Sensor, bound int64, v *viper.Viper, w io.Writer, logger *slog.Logger) (zone.Point, error) {
	workers := v.GetInt("workers")
	opts := []zone.Option{zone.WithWorkers(workers)}

	logger.Info("searching", "bound", bound, "workers", workers)

	if v.GetBool("progress") {
		progress := _newProgress(w, bound+1, _progressInterval)
		defer progress.Done()
		opts = append(opts, zone.WithProgress(progress.Add))
	}

	return zone.FindGap(ctx, sensors, bound, opts...)
}

func _writeReport(w io.Writer, format string, report *_Report) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	if r := report.Count; r != nil {
		fprintf(w, "Part #1: %v\n", r.Excluded)
	}
	if r := report.Gap; r != nil {
		fprintf(w, "Part #2: %v\n", r.Frequency)
	}
	return nil
}
