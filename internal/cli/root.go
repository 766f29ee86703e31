package cli

import (
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string

	// loaded before every command
	appCfg *AppConfig
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foodpunch",
		Short: "Food Punch Karachi ordering backend",
		Long:  "Serves the Food Punch Karachi menu, cart and WhatsApp checkout, and the Gemini chat assistant that can add items to the cart.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			appCfg = cfg
			initLogging(cfg, logLevel)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newMenuCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
