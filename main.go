package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"bioscope/internal/app"
	"bioscope/internal/config"
	"bioscope/internal/device"
	"bioscope/internal/scope"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagDemo    bool
	flagConfig  string
	flagName    string
	flagAddress string
	flagLogFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bioscope",
		Short: "bioscope - Terminal scope for wearable biosignal/IMU devices",
		Long: `bioscope connects to a wearable biosignal/IMU device over Bluetooth
Low Energy and renders its sensor streams as scrolling terminal charts,
with configurable axes, time window and sampling rate.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth access.
Use --demo flag for demonstration mode without hardware.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with a simulated device (no Bluetooth required)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&flagName, "name", "", "Advertised device name to connect to (overrides config)")
	rootCmd.Flags().StringVar(&flagAddress, "address", "", "Device address to connect to (overrides config)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagName != "" {
		cfg.Device.Name = flagName
	}
	if flagAddress != "" {
		cfg.Device.Address = flagAddress
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	logger, closeLog, err := setupLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var dev device.Device
	deviceLabel := "demo"
	if flagDemo {
		dev = device.NewMockDevice(logger)
	} else {
		if cfg.Device.Name == "" && cfg.Device.Address == "" {
			return fmt.Errorf("no device configured: set --name or --address, or use --demo")
		}
		dev = device.NewBLEDevice(cfg.Device.Name, cfg.Device.Address, logger)
		deviceLabel = cfg.Device.Name
		if deviceLabel == "" {
			deviceLabel = cfg.Device.Address
		}
	}

	// The refresh signal arrives on the device goroutine at the applied
	// rate; coalesce it so the program queue is not flooded at high Hz.
	var program *tea.Program
	var lastRefresh atomic.Int64
	notify := func() {
		now := time.Now().UnixMilli()
		last := lastRefresh.Load()
		if now-last < 50 || !lastRefresh.CompareAndSwap(last, now) {
			return
		}
		if p := program; p != nil {
			p.Send(app.RefreshMsg{})
		}
	}

	session, err := scope.NewSession(cfg, dev, logger, notify)
	if err != nil {
		return err
	}

	model := app.New(session, dev, deviceLabel)

	program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = model.Start(ctx)
	cancel()
	if err != nil {
		if !flagDemo {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Connecting to the device requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./bioscope")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./bioscope")
			fmt.Fprintln(os.Stderr, "  ./bioscope --demo    (demo mode, no hardware needed)")
		}
		return err
	}
	defer model.Stop()

	_, err = program.Run()
	return err
}

// setupLogger writes structured logs to a file; the terminal belongs
// to the TUI. No file configured means logging is discarded.
func setupLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
