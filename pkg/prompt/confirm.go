package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Confirm displays a prompt `s` to the user and returns true if the user confirmed,
// false if not.
// If the lower cased, trimmed input is equal to 'y', that is considered to be
// a confirmation. Any other input value will return false.
func Confirm(s string) bool {
	return ConfirmFrom(os.Stdin, os.Stderr, s)
}

// ConfirmFrom is Confirm reading the answer from in and writing the prompt to out.
func ConfirmFrom(in io.Reader, out io.Writer, s string) bool {
	r := bufio.NewReader(in)

	fmt.Fprintf(out, "%s [y/N]: ", s)

	res, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || res == "") {
		logrus.Error(err)
		return false
	}

	return strings.ToLower(strings.TrimSpace(res)) == "y"
}
