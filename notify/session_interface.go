/* session_interface.go
 * Contains interface for the Discord session methods used to post webhook messages, to enable mocking in tests
 */

package notify

import "github.com/bwmarrin/discordgo"

// WebhookSession defines the Discord session methods used by the notifier.
type WebhookSession interface {
	WebhookExecute(webhookID string, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Ensure *discordgo.Session implements WebhookSession
var _ WebhookSession = (*discordgo.Session)(nil)
