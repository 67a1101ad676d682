/* serve.go
 * Contains the serve command which runs the web server until interrupted
 */

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"horizons-site/api/captcha"
	"horizons-site/api/flow"
	"horizons-site/api/store"
	"horizons-site/config"
	"horizons-site/notify"
	"horizons-site/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := store.Shared(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.CloseShared(closeCtx); err != nil {
				log.Error().Err(err).Msg("failed to disconnect from MongoDB")
			}
		}()

		notifier, err := buildNotifier(cfg.Discord)
		if err != nil {
			return err
		}

		return web.Start(ctx, web.Config{
			Addr:            cfg.ListenAddr,
			AllowOrigins:    cfg.AllowOrigins,
			Debug:           cfg.GinDebugMode,
			SiteKey:         cfg.Captcha.SiteKey,
			WidgetURL:       cfg.Captcha.WidgetURL,
			Captcha:         captcha.NewClient(cfg.Captcha),
			Store:           db,
			Notifier:        notifier,
			SubmitRateLimit: cfg.Submit.RateLimit,
			SubmitBurst:     cfg.Submit.Burst,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// buildNotifier always logs sign-ups and also posts them to Discord when a webhook is configured
func buildNotifier(d config.DiscordConfig) (flow.Notifier, error) {
	if !d.Enabled() {
		return notify.Log{}, nil
	}
	discord, err := notify.NewDiscord(d.WebhookID, d.WebhookToken)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("posting sign-ups to Discord webhook")
	return notify.Multi{notify.Log{}, discord}, nil
}
