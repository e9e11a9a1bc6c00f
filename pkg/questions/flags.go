package questions

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Flags defines CLI flags to configure the content API client. These flags
// can also be set using environment variables and the application's
// configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "question-api-url",
			Usage: "URL of the SAT question content API",
			Value: DefaultURL,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("QUESTION_API_URL"),
				toml.TOML("questions.api_url", configFilePath),
			),
		},
	}
}
