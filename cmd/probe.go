package cmd

import (
	"fmt"

	"github.com/GoldenFealla/SyncPlayerGo/internal/config"
	"github.com/GoldenFealla/SyncPlayerGo/internal/decoder"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

var probeCmd = &cobra.Command{
	Use:   "probe [file]",
	Short: "Show the streams the player would use",
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

		info, err := decoder.Probe(cmd.Context(), path, settings.Audio)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderInfo(info))
		return nil
	},
}

func renderInfo(info decoder.Info) string {
	duration := "unknown"
	if d, ok := info.Duration.Get(); ok {
		duration = fmt.Sprintf("%.3fs", d)
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(info.Path),
		row("duration", duration),
		row("video", fmt.Sprintf("%s %dx%d @ %.3f fps", info.VideoCodec, info.Width, info.Height, info.FrameRate)),
		row("audio", fmt.Sprintf("%s %d Hz", info.AudioCodec, info.SourceRate)),
		row("output", fmt.Sprintf("s16 %d Hz x %d, rgba", info.AudioFormat.SampleRate, info.AudioFormat.Channels)),
	)
}
