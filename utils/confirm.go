package utils

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/manifoldco/promptui"
)

// ConfirmShortfall warns that the planned total exceeds the available disk
// space and asks the operator whether to proceed anyway. Returns false when
// the prompt is declined or interrupted.
func ConfirmShortfall(required, available uint64) (bool, error) {
	fmt.Printf("⚠️  Not enough disk space: need %s, have %s\n",
		bytefmt.ByteSize(required), bytefmt.ByteSize(available))

	prompt := promptui.Prompt{
		Label:     "Continue anyway",
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
