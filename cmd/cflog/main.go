// Command cflog reads Amazon CloudFront standard access logs from
// local files or S3 and prints them as text or JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/cflog/internal/cliconfig"
	"github.com/bft-labs/cflog/internal/watch"
	"github.com/bft-labs/cflog/pkg/cflog"
)

const longHelp = `cflog reads Amazon CloudFront standard access logs.

A locator is either a local file path or an s3://bucket/key URI.
Gzip-compressed logs are detected and decompressed transparently.

AWS credentials follow the SDK's default resolution chain; use
--region/--profile/--endpoint or a config file to override.`

var exampleUsage = strings.TrimSpace(`
  cflog cat /var/log/cdn/E123.2024-01-01-13.abcd.gz
  cflog cat s3://my-logs/E123.2024-01-01-13.abcd.gz --region eu-west-1 --json
  cflog fields s3://my-logs/E123.2024-01-01-13.abcd.gz
  cflog tail /var/log/cdn
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "cflog",
		Short:   "Read CloudFront access logs from disk or S3",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.cflog/config.toml),
			// then env vars, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			return cfg.Validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default ~/.cflog/config.toml)")
	pf.StringVar(&cfg.Region, "region", cfg.Region, "AWS region for s3:// locators")
	pf.StringVar(&cfg.Profile, "profile", cfg.Profile, "AWS shared-config profile")
	pf.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "custom S3 endpoint URL")
	pf.BoolVar(&cfg.JSON, "json", cfg.JSON, "print records as JSON lines")
	pf.IntVar(&cfg.Limit, "limit", cfg.Limit, "stop after N records (0 = unlimited)")
	pf.IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "read buffer size in bytes")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	root.AddCommand(catCommand(&cfg))
	root.AddCommand(fieldsCommand(&cfg))
	root.AddCommand(tailCommand(&cfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func catCommand(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <locator>",
		Short: "Print every record of a log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			logger := cliconfig.Logger(cfg.Verbose)
			return catLog(ctx, args[0], cfg, logger)
		},
	}
}

func fieldsCommand(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <locator>",
		Short: "Print the declared field schema of a log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			logger := cliconfig.Logger(cfg.Verbose)

			r, err := openReader(ctx, args[0], cfg, logger)
			if err != nil {
				return err
			}
			defer r.Close()

			s := r.Schema()
			fmt.Printf("version %s\n", s.Version)
			for _, f := range s.Fields() {
				fmt.Printf("%-30s %s\n", f.Name, f.Kind)
			}
			return nil
		},
	}
}

func tailCommand(cfg *cliconfig.Config) *cobra.Command {
	var settle time.Duration
	cmd := &cobra.Command{
		Use:   "tail <dir>",
		Short: "Watch a delivery directory and print records from new logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			logger := cliconfig.Logger(cfg.Verbose)

			paths := make(chan string, 16)
			w := watch.New(args[0], settle, logger)

			errCh := make(chan error, 1)
			go func() { errCh <- w.Run(ctx, paths) }()

			for {
				select {
				case path := <-paths:
					if err := catLog(ctx, path, cfg, logger); err != nil {
						logger.Error().Err(err).Str("path", path).Msg("read log file")
					}
				case err := <-errCh:
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
			}
		},
	}
	cmd.Flags().DurationVar(&settle, "settle", watch.DefaultSettleDelay, "time a file must stay unmodified before it is read")
	return cmd
}

// openReader opens a session with the CLI's options applied.
func openReader(ctx context.Context, locator string, cfg *cliconfig.Config, logger zerolog.Logger) (*cflog.Reader, error) {
	return cflog.Open(ctx, locator,
		cflog.WithLogger(logger),
		cflog.WithRemoteConfig(cfg.RemoteConfig()),
		cflog.WithBufferSize(cfg.BufferSize),
	)
}

// catLog streams every record of one log to stdout.
func catLog(ctx context.Context, locator string, cfg *cliconfig.Config, logger zerolog.Logger) error {
	r, err := openReader(ctx, locator, cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	enc := json.NewEncoder(os.Stdout)
	n := 0
	for cfg.Limit == 0 || n < cfg.Limit {
		rec, err := r.Next(ctx)
		if errors.Is(err, cflog.ErrEndOfLog) {
			return nil
		}
		if err != nil {
			return err
		}
		n++

		if cfg.JSON {
			if err := enc.Encode(rec.Map()); err != nil {
				return err
			}
			continue
		}
		fmt.Println(strings.Join(rec.Tokens(), "\t"))
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
