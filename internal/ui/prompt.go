package ui

import "github.com/charmbracelet/huh"

// ConfirmStart asks whether to begin the run. A declined prompt or an aborted
// form both count as "no".
func ConfirmStart() (bool, error) {
	proceed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start the ping scan?").
				Affirmative("Start").
				Negative("Cancel").
				Value(&proceed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return proceed, nil
}
