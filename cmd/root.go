/* root.go
 * Contains the root command, its persistent logging flags and the configuration every subcommand shares
 */

package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"horizons-site/config"
)

// LogLevel Flag. Empty means LOG_LEVEL from the environment.
var LogLevel string

// LogFormat Flag. Empty means LOG_FORMAT from the environment.
var LogFormat string

// cfg is loaded before any subcommand runs
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "horizons",
	Short: "Registration site for the Horizons robotics hackathon",
	Long: `Serves the Horizons landing and registration pages, verifies captcha tokens and records registrations and
interest sign-ups in MongoDB. The register and interest commands submit through a running site.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "logging level to show (options: debug|info|warn|error, default: $LOG_LEVEL or info)")
	rootCmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "log format to generate (options: json|pretty, default: $LOG_FORMAT or json)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if LogLevel != "" {
		loaded.LogLevel = LogLevel
	}
	if LogFormat != "" {
		loaded.LogFormat = LogFormat
	}
	config.SetupLogger(loaded.LogLevel, loaded.LogFormat)
	cfg = loaded
	return nil
}

// Execute the commands
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
