// Package seed carries the static records the service boots from. The data
// files are compiled into the binary; a config block can point at
// replacement files on disk.
package seed

import (
	_ "embed"
	"os"
)

//go:embed loans.json
var loans []byte

//go:embed staffs.json
var staffs []byte

// Loans returns the loan records, from the override path when set.
func Loans(overridePath string) ([]byte, error) {
	if overridePath != "" {
		return os.ReadFile(overridePath)
	}
	return loans, nil
}

// Staffs returns the staff records, from the override path when set.
func Staffs(overridePath string) ([]byte, error) {
	if overridePath != "" {
		return os.ReadFile(overridePath)
	}
	return staffs, nil
}
