package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/app"
	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
)

// options holds the command-line overrides applied over the config file
type options struct {
	configPath  string
	contentPath string
	debug       bool
	noAudio     bool
	noOverlay   bool
	fps         int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:          "termfolio",
		Short:        "A terminal portfolio with a scroll-driven project carousel",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "YAML config file (default: built-in)")
	f.StringVar(&o.contentPath, "content", "", "YAML content file (default: embedded)")
	f.BoolVar(&o.debug, "debug", false, "write a debug log under the log directory")
	f.BoolVar(&o.noAudio, "no-audio", false, "disable interface sounds")
	f.BoolVar(&o.noOverlay, "no-overlay", false, "disable the background overlay")
	f.IntVar(&o.fps, "fps", 0, "frame rate override")

	root.AddCommand(newContentCmd(&o), newConfigCmd(&o))
	return root
}

func newContentCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{Use: "content", Short: "Inspect page content"}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the effective content as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*o)
			if err != nil {
				return err
			}
			svc := content.NewService(cfg.Content.Path, nil)
			if err := svc.Init(); err != nil {
				return err
			}
			data, err := content.Marshal(svc.Current())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Inspect configuration"}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*o)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

// loadConfig layers file, environment and flags, then validates
func loadConfig(o options) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if o.contentPath != "" {
		cfg.Content.Path = o.contentPath
	}
	if o.noAudio {
		cfg.Audio.Enabled = false
	}
	if o.noOverlay {
		cfg.Overlay.Enabled = false
	}
	if o.fps != 0 {
		cfg.Frame.FPS = o.fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	log, closeLog, err := setupLogging(cfg.Log.Dir, cfg.Log.MaxSize, o.debug)
	if err != nil {
		return err
	}
	defer closeLog()
	core.SetLogger(log)

	// Content
	svc := content.NewService(cfg.Content.Path, log)
	if err := svc.Init(); err != nil {
		return err
	}
	if cfg.Content.Watch {
		if err := svc.Watch(); err != nil {
			log.Warn("content watch unavailable", zap.Error(err))
		}
	}
	defer svc.Stop()

	// Audio degrades to silence
	var cues audio.Cues = audio.Silent{}
	audioOn := false
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume, log)
		if err := sm.Initialize(); err == nil {
			cues, audioOn = sm, true
			defer sm.Cleanup()
		}
	}

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	core.SetScreen(screen)
	defer func() {
		core.SetScreen(nil)
		screen.Fini()
	}()

	a, err := app.New(screen, app.Options{
		Config:  cfg,
		Content: svc.Current(),
		Changes: svc.Changes(),
		Cues:    cues,
		Log:     log,
	})
	if err != nil {
		return err
	}

	log.Info("session start",
		zap.String("content", cfg.Content.Path),
		zap.Bool("audio", audioOn))
	return a.Run(ctx)
}
