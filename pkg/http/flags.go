package http

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

const (
	DefaultPort = 3000
)

// Flags defines CLI flags to configure the bot's HTTP server. These flags
// can also be set using environment variables and the application's
// configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "http-port",
			Usage: "loopback port for inbound Slack webhooks",
			Value: DefaultPort,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SATBOT_HTTP_PORT"),
				toml.TOML("http.port", configFilePath),
			),
		},
	}
}
