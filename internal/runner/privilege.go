package runner

import (
	"errors"
	"fmt"
	"os"
)

// ErrPrivilege is returned when the invoking user may not act as the service account
var ErrPrivilege = errors.New("insufficient privilege")

// CheckPrivilege verifies the invoking user can run commands as account.
// Root and the account itself are always allowed.
func CheckPrivilege(account string) error {
	if account == "" {
		return nil
	}
	if os.Geteuid() == 0 || currentUsername() == account {
		return nil
	}
	return fmt.Errorf("%w: run as root or %s (e.g. with sudo)", ErrPrivilege, account)
}
