package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// IsAccountNumber checks the 16-digit account number format, including
// its Luhn check digit.
func IsAccountNumber(s string) bool {
	return len(s) == 16 && IsLuna(s)
}

// IsBalanceNumber checks the 20-digit balance number format: a valid
// account number followed by a 4-digit sequence.
func IsBalanceNumber(s string) bool {
	if len(s) != 20 {
		return false
	}
	for _, r := range s[16:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return IsAccountNumber(s[:16])
}
