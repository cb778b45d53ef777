package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/council/lib/errors"
)

func errorString(err error) string {
	if councilError, ok := err.(*errors.Error); ok {
		if len(councilError.Data) < 1 {
			return councilError.Message
		}
		return fmt.Sprintf("%s; %v", councilError.Message, councilError.Data)
	}

	return err.Error()
}

// PrintFlagsError issues a message on Stderr with the usage, then exits with
// an error code.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError issues the error of a call on Stderr, then exits with an error
// code.
func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorString(err))
	}

	os.Exit(1)
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	for _, v := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
		*i = append(*i, v)
	}
	return nil
}
