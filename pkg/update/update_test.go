package update

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	oldDoc = "<rspec>\n  <node client_id=\"nfs\"/>\n</rspec>\n"
	newDoc = "<rspec>\n  <node client_id=\"nfs\"/>\n  <node client_id=\"node1\"/>\n</rspec>\n"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "request.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func refuse(t *testing.T) func(string) bool {
	return func(string) bool {
		t.Error("unexpected confirmation prompt")
		return false
	}
}

func TestMaybeWrite_Identical(t *testing.T) {
	t.Parallel()

	path := writeFile(t, oldDoc)
	var out bytes.Buffer

	changed, err := MaybeWrite(path, []byte(oldDoc), Options{Out: &out, Confirm: refuse(t)})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, out.String())
	assert.Equal(t, oldDoc, readFile(t, path))
}

func TestMaybeWrite_NewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "request.xml")

	changed, err := MaybeWrite(path, []byte(newDoc), Options{Out: &bytes.Buffer{}, Confirm: refuse(t)})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, newDoc, readFile(t, path))
}

func TestMaybeWrite_Changed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		opts      Options
		answer    bool
		wantErr   error
		wantAsked bool
		wantDoc   string
	}{
		{name: "confirmed", answer: true, wantAsked: true, wantDoc: newDoc},
		{name: "declined", answer: false, wantAsked: true, wantErr: ErrAborted, wantDoc: oldDoc},
		{name: "force", opts: Options{ForceYes: true}, wantDoc: newDoc},
		{name: "dry run", opts: Options{DryRun: true}, wantDoc: oldDoc},
	}

	for i := range cases {
		tcase := &cases[i]
		t.Run(tcase.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, oldDoc)
			var out bytes.Buffer
			asked := false

			opts := tcase.opts
			opts.Out = &out
			opts.Confirm = func(string) bool {
				asked = true
				return tcase.answer
			}

			_, err := MaybeWrite(path, []byte(newDoc), opts)
			if tcase.wantErr != nil {
				assert.ErrorIs(t, err, tcase.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tcase.wantAsked, asked)
			assert.Contains(t, out.String(), "The following changes to "+path)
			assert.Contains(t, out.String(), "node1")
			assert.Equal(t, tcase.wantDoc, readFile(t, path))
		})
	}
}
