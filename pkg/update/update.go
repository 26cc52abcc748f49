// Package update writes rendered requests to files, showing what changes
// before an existing file is replaced.
package update

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
	log "github.com/sirupsen/logrus"

	"github.com/pgrigo01/nfs-profile/pkg/prompt"
)

// ErrAborted is returned when the user declines to overwrite a file.
var ErrAborted = errors.New("aborted")

type Options struct {
	// ForceYes replaces the file without asking.
	ForceYes bool
	// DryRun only shows the diff.
	DryRun bool
	// Out receives the diff. Defaults to os.Stdout.
	Out io.Writer
	// Confirm asks the user. Defaults to prompt.Confirm.
	Confirm func(string) bool
}

// MaybeWrite writes doc to path. If path already exists with different
// content, the diff is shown and the user is asked before replacing it.
// The returned bool reports whether the file differed from doc.
func MaybeWrite(path string, doc []byte, opts Options) (bool, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	confirm := opts.Confirm
	if confirm == nil {
		confirm = prompt.Confirm
	}

	old, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if opts.DryRun {
			fmt.Fprintf(out, "Would create %s\n", path)
			return true, nil
		}
		if err := write(path, doc); err != nil {
			return true, err
		}
		log.WithField("path", path).Info("created request file")
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read existing file: %w", err)
	}

	if cmp.Equal(old, doc) {
		// nothing to do
		log.WithField("path", path).Debug("request file is up to date")
		return false, nil
	}

	fmt.Fprintf(out, "The following changes to %s are necessary:\n", path)
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(old), string(doc), false)
	fmt.Fprintln(out, dmp.DiffPrettyText(diffs))
	fmt.Fprintln(out)
	if opts.DryRun {
		return true, nil
	}
	if !opts.ForceYes {
		if !confirm("Write the new request now?") {
			return false, ErrAborted
		}
	}

	if err := write(path, doc); err != nil {
		return true, err
	}
	log.WithField("path", path).Info("updated request file")
	return true, nil
}

func write(path string, doc []byte) error {
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
