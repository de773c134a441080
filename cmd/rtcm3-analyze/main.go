package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matthewhilton/rtk/internal/capture"
	"github.com/matthewhilton/rtk/internal/config"
	"github.com/matthewhilton/rtk/pkg/rtcm3"
)

var (
	rootCmd = &cobra.Command{
		Use:   "rtcm3-analyze [file]",
		Short: "Decode RTCM3 correction messages",
		Long: "rtcm3-analyze finds RTCM3 frames in a capture file, stdin, a hex string or a\n" +
			"serial receiver and prints the type and decoded header of each message.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			level, _ := logrus.ParseLevel(cfg.LogLevel)
			logrus.SetLevel(level)
			opts := rtcm3.AnalyzeOptions{StrictReserved: cfg.StrictReserved, Logger: logrus.StandardLogger()}
			ctx := cmd.Context()
			switch {
			case interactive:
				return runInteractive(ctx, cmd.OutOrStdout(), cfg, opts, cmd.InOrStdin())
			case hexInput != "":
				return runHex(ctx, cmd.OutOrStdout(), cfg, opts, hexInput)
			case cfg.Serial.Device != "":
				return runSerial(ctx, cmd.OutOrStdout(), cfg, opts)
			case len(args) == 1:
				return runFile(ctx, cmd.OutOrStdout(), cfg, opts, args[0])
			default:
				return runReader(ctx, cmd.OutOrStdout(), cfg, opts, cmd.InOrStdin())
			}
		},
	}

	configPath  string
	hexInput    string
	interactive bool
	flagValues  config.Config
)

func init() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "TOML config file")
	flags.StringVar(&hexInput, "hex", "", "hex-encoded bytes to scan instead of a file")
	flags.BoolVarP(&interactive, "interactive", "i", false, "read hex lines from stdin and decode each one")
	flags.StringVar(&flagValues.LogLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&flagValues.Format, "format", defaults.Format, "output format (text or json)")
	flags.BoolVar(&flagValues.StrictReserved, "strict", false, "reject frames whose reserved length bits are set")
	flags.StringVar(&flagValues.Serial.Device, "serial", "", "serial device of a receiver to capture from")
	flags.IntVar(&flagValues.Serial.Baud, "baud", defaults.Serial.Baud, "serial baud rate")
	flags.IntVar(&flagValues.Serial.ReadBytes, "bytes", defaults.Serial.ReadBytes, "maximum bytes to capture from the serial port")
	flags.DurationVar(&flagValues.Serial.ReadTimeout, "timeout", defaults.Serial.ReadTimeout, "how long to capture from the serial port")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// loadConfig applies the config file, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagValues.LogLevel
	}
	if flags.Changed("format") {
		cfg.Format = strings.ToLower(flagValues.Format)
	}
	if flags.Changed("strict") {
		cfg.StrictReserved = flagValues.StrictReserved
	}
	if flags.Changed("serial") {
		cfg.Serial.Device = flagValues.Serial.Device
	}
	if flags.Changed("baud") {
		cfg.Serial.Baud = flagValues.Serial.Baud
	}
	if flags.Changed("bytes") {
		cfg.Serial.ReadBytes = flagValues.Serial.ReadBytes
	}
	if flags.Changed("timeout") {
		cfg.Serial.ReadTimeout = flagValues.Serial.ReadTimeout
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runFile(ctx context.Context, w io.Writer, cfg config.Config, opts rtcm3.AnalyzeOptions, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"file": path, "bytes": len(data)}).Info("scanning file")
	return analyze(ctx, w, cfg, opts, data)
}

func runReader(ctx context.Context, w io.Writer, cfg config.Config, opts rtcm3.AnalyzeOptions, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return analyze(ctx, w, cfg, opts, data)
}

func runSerial(ctx context.Context, w io.Writer, cfg config.Config, opts rtcm3.AnalyzeOptions) error {
	port, err := capture.OpenSerial(cfg.Serial)
	if err != nil {
		return err
	}
	defer port.Close()
	logrus.WithFields(logrus.Fields{
		"device":  cfg.Serial.Device,
		"baud":    cfg.Serial.Baud,
		"timeout": cfg.Serial.ReadTimeout,
	}).Info("capturing from serial port")
	data, err := capture.Read(ctx, port, cfg.Serial.ReadBytes, cfg.Serial.ReadTimeout)
	if err != nil {
		logrus.WithError(err).Warn("serial capture ended early")
	}
	return analyze(ctx, w, cfg, opts, data)
}

func runHex(ctx context.Context, w io.Writer, cfg config.Config, opts rtcm3.AnalyzeOptions, hex string) error {
	analysis, err := rtcm3.AnalyzeHexWithOptions(ctx, hex, opts)
	if err != nil {
		return err
	}
	return render(w, cfg.Format, analysis)
}

func runInteractive(ctx context.Context, w io.Writer, cfg config.Config, opts rtcm3.AnalyzeOptions, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	logrus.Info("rtcm3 analyze mode. Paste hex bytes and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runHex(ctx, w, cfg, opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode input")
		}
	}
	return scanner.Err()
}

func analyze(ctx context.Context, w io.Writer, cfg config.Config, opts rtcm3.AnalyzeOptions, data []byte) error {
	analysis, err := rtcm3.AnalyzeWithOptions(ctx, data, opts)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"frames":       analysis.Stats.Frames,
		"skipped":      analysis.Stats.Skipped,
		"bad_checksum": analysis.Stats.BadChecksum,
	}).Info("done")
	return render(w, cfg.Format, analysis)
}

func render(w io.Writer, format string, analysis rtcm3.Analysis) error {
	if format == config.FormatJSON {
		out := make([]map[string]any, 0, len(analysis.Results))
		for _, r := range analysis.Results {
			entry := map[string]any{
				"offset":         r.Offset,
				"payload_length": r.Length,
				"type":           r.Type.String(),
				"fields":         r.Fields(),
			}
			if r.Err != nil {
				entry["error"] = r.Err.Error()
			}
			out = append(out, entry)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, r := range analysis.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "Frame - offset: %d - length: %d - error: %v\n", r.Offset, r.Length, r.Err)
			continue
		}
		fmt.Fprintf(w, "Message - type: %s - offset: %d - length: %d\n", r.Type, r.Offset, r.Length)
		if r.Parsed() {
			fmt.Fprintf(w, "  %v\n", r.Fields())
		}
	}
	return nil
}
