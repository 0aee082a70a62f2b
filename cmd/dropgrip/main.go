package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dropgrip/internal/config"
	"dropgrip/internal/domain"
	"dropgrip/internal/eventbus"
	"dropgrip/internal/log"
	"dropgrip/internal/ui"
)

var version = "0.1.0"

var (
	configPath string
	debug      bool
	generate   int
)

var rootCmd = &cobra.Command{
	Use:   "dropgrip",
	Short: "Fill in a form of dropdowns in the terminal",
	Long:  "dropgrip renders the dropdowns described by a TOML file and prints the submitted values as TOML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		bus := eventbus.New()
		defer bus.Close()

		svc := config.NewConfigServiceWithPath(configPath, bus)
		if _, err := os.Stat(svc.Path()); err == nil {
			return fmt.Errorf("config already exists: %s", svc.Path())
		}
		if err := svc.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", svc.Path())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dropgrip %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/dropgrip/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "write debug logs to dropgrip.log")
	rootCmd.Flags().IntVar(&generate, "generate", 0, "add a dropdown with N generated options")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logDir, err := os.UserCacheDir()
	if err != nil {
		logDir = os.TempDir()
	}
	log.Setup(filepath.Join(logDir, "dropgrip", "dropgrip.log"), debug)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithPath(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if generate > 0 {
		cfg.Dropdowns = append(cfg.Dropdowns, generatedDropdown(generate))
	}

	uiModel := ui.NewModel(bus, cfg)
	uiModel.SetReloadFunction(func() (*config.Config, error) {
		return configSvc.LoadFromPath(configSvc.Path())
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Forward app events into the program
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			slog.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventConfigChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventSelectionCommitted, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SelectionCommittedEvent); ok {
			slog.Info("selection committed", "name", ev.Name, "values", ev.Selection.Values())
		}
	})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			}
		}
	}()

	if cfg.UISettings.WatchConfig {
		if _, err := os.Stat(configSvc.Path()); err == nil {
			watcher, err := config.NewWatcher(configSvc.Path(), bus)
			if err != nil {
				slog.Error("config watcher unavailable", "error", err)
			} else {
				go watcher.Run(ctx)
			}
		}
	}

	var runErr error
	func() {
		defer log.RecoverPanic("program", func() { _ = p.ReleaseTerminal() })
		_, runErr = p.Run()
	}()
	if runErr != nil {
		return fmt.Errorf("error running program: %w", runErr)
	}

	if _, ok := uiModel.Submitted(); !ok {
		return nil
	}
	out, err := uiModel.Encode()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

// generatedDropdown builds a searchable dropdown large enough to render windowed
func generatedDropdown(n int) config.DropdownConfig {
	options := make([]domain.Option, n)
	for i := range options {
		options[i] = domain.Option{
			Value: fmt.Sprintf("item-%d", i+1),
			Label: fmt.Sprintf("Generated item %d", i+1),
		}
	}
	return config.DropdownConfig{
		Name:      "generated",
		Label:     fmt.Sprintf("Generated (%d)", n),
		Search:    true,
		Portal:    true,
		MaxHeight: 10,
		Options:   options,
	}
}
