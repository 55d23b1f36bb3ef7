package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/GoldenFealla/SyncPlayerGo/internal/config"
	"github.com/GoldenFealla/SyncPlayerGo/internal/decoder"
	"github.com/GoldenFealla/SyncPlayerGo/internal/input"
	"github.com/GoldenFealla/SyncPlayerGo/internal/media/synchronizer"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/GoldenFealla/SyncPlayerGo/internal/sink"
	"github.com/GoldenFealla/SyncPlayerGo/internal/widget"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Float64("volume", 1, "Initial volume, 0 to 1")
	lo.Must0(viper.BindPFlag(config.PlaybackVolume, playCmd.Flags().Lookup("volume")))

	playCmd.Flags().Float64("buffer", 0.3, "Seconds of audio kept queued")
	lo.Must0(viper.BindPFlag(config.PlaybackTargetBuffer, playCmd.Flags().Lookup("buffer")))

	playCmd.Flags().String("frontend", "window", "Frontend: window or console")
	lo.Must0(viper.BindPFlag(config.UIFrontend, playCmd.Flags().Lookup("frontend")))
	lo.Must0(playCmd.RegisterFlagCompletionFunc("frontend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"window", "console"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Play a media file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := pathArg(args)
		if err != nil {
			return err
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return play(ctx, path, settings)
	},
}

func play(ctx context.Context, path string, settings config.Playback) error {
	pair, err := decoder.OpenPair(ctx, path, settings.Audio)
	if err != nil {
		return err
	}

	out, err := sink.NewOto(settings.Audio, settings.AudioBuffer)
	if err != nil {
		pair.Close()
		return err
	}

	queue := input.NewQueue()
	collaborators := synchronizer.Collaborators{
		Audio: pair.Audio,
		Video: pair.Video,
		Sink:  out,
		Input: queue,
	}

	if settings.Frontend == "console" {
		return playConsole(ctx, settings, collaborators, queue)
	}
	return playWindow(ctx, filepath.Base(path), settings, collaborators, queue)
}

// playWindow runs the player on its own goroutine while the fyne loop holds
// the main one.
func playWindow(ctx context.Context, title string, settings config.Playback, c synchronizer.Collaborators, queue *input.Queue) error {
	keys := widget.NewKeys(settings.SeekStep, settings.VolumeStep, settings.Volume)
	win := widget.NewWindow(title, settings.Width, settings.Height, queue, keys)
	c.Renderer = win

	player, err := synchronizer.Open(ctx, settings.Synchronizer(), c)
	if err != nil {
		return err
	}
	defer player.Close()

	errc := make(chan error, 1)
	go func() {
		errc <- player.Run(ctx)
		win.Quit()
	}()

	go func() {
		<-ctx.Done()
		queue.Push(ports.Quit())
	}()

	win.Run()
	return <-errc
}

// playConsole plays the audio with commands read from the terminal and no
// picture.
func playConsole(ctx context.Context, settings config.Playback, c synchronizer.Collaborators, queue *input.Queue) error {
	console, err := input.NewConsole(queue, settings.SeekStep)
	if err != nil {
		c.Audio.Close()
		c.Video.Close()
		c.Sink.Close()
		return err
	}
	defer console.Close()

	headless := &widget.Headless{}
	c.Renderer = headless

	player, err := synchronizer.Open(ctx, settings.Synchronizer(), c)
	if err != nil {
		return err
	}
	defer player.Close()

	go console.Run()

	err = player.Run(ctx)
	logrus.WithField("component", "cli").Infof("%d frames presented", headless.Presents)
	return err
}
