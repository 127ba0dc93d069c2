package cli

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForAPIKey asks for the NewsAPI key without echoing it. An empty
// answer is allowed and disables the keyed headline source.
func PromptForAPIKey() (string, error) {
	var key string
	prompt := &survey.Password{
		Message: "NewsAPI key (leave empty to use RSS feeds only):",
		Help:    "Get a free key at https://newsapi.org/register",
	}

	if err := survey.AskOne(prompt, &key); err != nil {
		return "", err
	}

	return strings.TrimSpace(key), nil
}
