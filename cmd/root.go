// Package cmd implements the syncplayer command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/GoldenFealla/SyncPlayerGo/internal/config"
	"github.com/GoldenFealla/SyncPlayerGo/internal/decoder"
	"github.com/GoldenFealla/SyncPlayerGo/internal/input"
	"github.com/GoldenFealla/SyncPlayerGo/internal/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Read settings from this file")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
	lo.Must0(viper.BindPFlag(config.LogsLevel, rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file instead of stderr")
	lo.Must0(viper.BindPFlag(config.LogsFile, rootCmd.PersistentFlags().Lookup("log-file")))
}

var rootCmd = &cobra.Command{
	Use:           config.Name,
	Short:         "Play a video file with its picture locked to the audio clock",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Setup(cfgFile); err != nil {
			return err
		}
		if err := log.Setup(); err != nil {
			return err
		}
		decoder.SetLogLevel(logrus.GetLevel())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Close()
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	handleErr(rootCmd.Execute())
}

var failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

func handleErr(err error) {
	if err != nil {
		logrus.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", failStyle.Render("✗"), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// pathArg returns the file argument or asks for one.
func pathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return input.PromptPath("Media file")
}
