package cli

import (
	"fmt"
	"os"

	"github.com/SaiNageswarS/edu-assist/appconfig"
	"github.com/spf13/cobra"
)

var (
	configPath string
	inMemory   bool
)

var rootCmd = &cobra.Command{
	Use:   "eduassist",
	Short: "EduAssist - student helpdesk chat",
	Long: `EduAssist CLI

Chat with the helpdesk assistant, manage past conversations and open
support tickets. Everything is stored locally.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.ini", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "keep data in memory only")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newTicketCmd())
	rootCmd.AddCommand(newStartersCmd())
}

// openApp loads configuration and opens local storage for a command.
func openApp() (*App, error) {
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewApp(cfg, inMemory)
}
