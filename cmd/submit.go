/* submit.go
 * Contains the register and interest commands. They run the same flows as the web pages, verifying the token
 * through a running site's captcha proxy and writing straight to MongoDB.
 */

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"horizons-site/api/flow"
	"horizons-site/api/store"
)

var (
	registerForm  flow.RegistrationForm
	registerToken string

	interestEmail string
	interestToken string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Submit a registration",
	Example: `  horizons register --name "Ada Lovelace" --email ada@stanford.edu --school "Stanford University" \
    --graduation-year 2027 --experience beginner --token <solved captcha token>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := store.Shared(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer store.CloseShared(context.Background())

		verifier := flow.NewProxyVerifier(cfg.ServerURL, nil)
		notifier, err := buildNotifier(cfg.Discord)
		if err != nil {
			return err
		}
		return submitRegistration(ctx, cmd.OutOrStdout(), verifier, db, notifier, registerForm, registerToken)
	},
}

var interestCmd = &cobra.Command{
	Use:     "interest",
	Short:   "Sign an email up for updates",
	Example: `  horizons interest --email bob@example.com --token <solved captcha token>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := store.Shared(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer store.CloseShared(context.Background())

		verifier := flow.NewProxyVerifier(cfg.ServerURL, nil)
		notifier, err := buildNotifier(cfg.Discord)
		if err != nil {
			return err
		}
		return submitInterest(ctx, cmd.OutOrStdout(), verifier, db, notifier, interestEmail, interestToken)
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerForm.FullName, "name", "", "full name of the registrant")
	registerCmd.Flags().StringVar(&registerForm.Email, "email", "", "email address")
	registerCmd.Flags().StringVar(&registerForm.School, "school", "", "school or university")
	registerCmd.Flags().StringVar(&registerForm.GraduationYear, "graduation-year", "", "expected graduation year (2025-2029 or graduated)")
	registerCmd.Flags().StringVar(&registerForm.TravelingFrom, "traveling-from", "", "city, state/country")
	registerCmd.Flags().StringVar(&registerForm.Experience, "experience", "", "none|beginner|intermediate|advanced")
	registerCmd.Flags().StringVar(&registerToken, "token", "", "solved captcha token")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")

	interestCmd.Flags().StringVar(&interestEmail, "email", "", "email address")
	interestCmd.Flags().StringVar(&interestToken, "token", "", "solved captcha token")
	_ = interestCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(registerCmd, interestCmd)
}

func submitRegistration(ctx context.Context, out io.Writer, verifier flow.Verifier, writer flow.RegistrationWriter,
	notifier flow.Notifier, form flow.RegistrationForm, token string) error {
	r := flow.NewRegistration(flow.NewStaticWidget(token), verifier, writer, flow.WithNotifier(notifier))
	r.SetForm(form)

	if err := r.Submit(ctx); err != nil {
		return fmt.Errorf("%s: %w", r.Message(), err)
	}
	fmt.Fprintf(out, "Registered %s\n", form.Email)
	return nil
}

func submitInterest(ctx context.Context, out io.Writer, verifier flow.Verifier, writer flow.InterestWriter,
	notifier flow.Notifier, email string, token string) error {
	i := flow.NewInterest(flow.NewStaticWidget(token), verifier, writer, flow.WithNotifier(notifier))
	i.SetEmail(email)

	if err := i.Submit(ctx); err != nil {
		return fmt.Errorf("%s: %w", i.Message(), err)
	}
	fmt.Fprintf(out, "Signed up %s for updates\n", email)
	return nil
}
