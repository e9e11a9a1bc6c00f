package slack

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Flags defines CLI flags for the bot's Slack secrets and request
// verification. These flags can also be set using environment variables
// and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "slack-bot-token",
			Usage: "Slack bot token for Web API calls (xoxb-...)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_BOT_TOKEN"),
				toml.TOML("slack.bot_token", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-signing-secret",
			Usage: "secret for verifying inbound Slack request signatures",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_SIGNING_SECRET"),
				toml.TOML("slack.signing_secret", configFilePath),
			),
		},
		&cli.BoolFlag{
			Name:  "require-signature",
			Usage: "reject inbound requests with a missing or invalid signature",
			Value: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_REQUIRE_SIGNATURE"),
				toml.TOML("slack.require_signature", configFilePath),
			),
		},
	}
}
