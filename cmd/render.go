package cmd

import (
	"fmt"

	"github.com/GoldenFealla/SyncPlayerGo/internal/config"
	"github.com/GoldenFealla/SyncPlayerGo/internal/decoder"
	"github.com/GoldenFealla/SyncPlayerGo/internal/media/synchronizer"
	"github.com/GoldenFealla/SyncPlayerGo/internal/sink"
	"github.com/GoldenFealla/SyncPlayerGo/internal/widget"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("audio-out", "", "Write the played audio to this WAV file")
	lo.Must0(renderCmd.MarkFlagRequired("audio-out"))
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Run the player offline, writing the audio it plays to a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pair, err := decoder.OpenPair(ctx, args[0], settings.Audio)
		if err != nil {
			return err
		}

		out, err := sink.NewWav(afero.NewOsFs(), lo.Must(cmd.Flags().GetString("audio-out")), settings.Audio)
		if err != nil {
			pair.Close()
			return err
		}

		headless := &widget.Headless{}

		// The wav sink advances per clock poll, so there is nothing to wait for.
		cfg := settings.Synchronizer()
		cfg.PollInterval = 0

		player, err := synchronizer.Open(ctx, cfg, synchronizer.Collaborators{
			Audio:    pair.Audio,
			Video:    pair.Video,
			Sink:     out,
			Renderer: headless,
		})
		if err != nil {
			return err
		}

		runErr := player.Run(ctx)
		if err := player.Close(); err != nil && runErr == nil {
			runErr = err
		}
		if runErr != nil {
			return runErr
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(headless, out))
		return nil
	},
}

func renderSummary(h *widget.Headless, out *sink.Wav) string {
	return titleStyle.Render("rendered") + " " + valueStyle.Render(fmt.Sprintf(
		"%d frames, %.3fs audio, checksum %08x",
		h.Presents, out.Format().Seconds(out.Written()), h.Checksum,
	))
}
