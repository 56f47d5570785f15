package cmd

import (
	"fmt"
	"os"
)

// confirmIfExists checks that a file exists, and asks the user for
// confirmation before overwriting it. It returns true if the file doesn't
// exist, or if the user answered yes to the confirmation msg printed to
// standard output. If ok is false or err is not nil, the operation on path
// should be aborted.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return true, nil
		}
		return false, statErr
	}
	return askForConfirmation(msg), nil
}

// askForConfirmation shows msg and asks the user to type y or n (typing
// ENTER defaults to no).
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	var answer string
	fmt.Scanln(&answer)
	switch answer {
	case "Y", "y":
		return true
	default:
		return false
	}
}

// check aborts the process with a non-zero exit code on any geometric or
// I/O failure.
func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
