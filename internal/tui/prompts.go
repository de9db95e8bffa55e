package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when a prompt is needed but the session
// is not interactive
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled; pass --yes to confirm")

func checkInteractiveAllowed() error {
	if os.Getenv("REPOSMITH_TEST_NO_INTERACTIVE") != "" || !IsTTY() {
		return ErrInteractiveDisabled
	}
	return nil
}

// ConfirmDeletion asks the user to confirm removing a repository locally and
// remotely. It defaults to no.
func ConfirmDeletion(ownedName, localDirectory string) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Delete %s and its local copy at %s?", ownedName, localDirectory),
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("canceled")
	}
	return confirmed, nil
}

// PromptRepositoryDescription asks for an optional description of a new
// repository
func PromptRepositoryDescription(ownedName string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	var description string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Description for %s (optional):", ownedName),
	}
	if err := survey.AskOne(prompt, &description); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return description, nil
}
