package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgrigo01/nfs-profile/pkg/rest"
)

// run executes the CLI with args. The commands share the global logger and
// the global viper instance, so tests in this package do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	config := filepath.Join(t.TempDir(), "nfs-profile.toml")
	require.NoError(t, os.WriteFile(config, []byte("[server]\naddr = \":8337\"\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd := rootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", config}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRender_Stdout(t *testing.T) {
	out, err := run(t, "nfs", "--set", "clientCount=1", "--set", "usePersistentStorage=false")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `client_id="node1"`)
	assert.NotContains(t, out, `client_id="node2"`)
	assert.NotContains(t, out, `persistent="true"`)
}

func TestRender_ParamsFileAndSet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`node_count: 2
extra_disk_space: 10
sharedVlans:
  - connectSharedVlan: true
    name: lab
    ip_address: 10.40.0.1
    subnet_mask: 255.255.255.0
`), 0o644))

	out, err := run(t, "cluster", "--params", file, "--set", "node_count=3")
	require.NoError(t, err)
	assert.Contains(t, out, `client_id="node2"`)
	assert.Contains(t, out, `size="10GB"`)
	assert.Contains(t, out, `<emulab:shared_vlan name="lab"/>`)
	assert.Contains(t, out, `address="10.40.0.3"`)
}

func TestRender_Environment(t *testing.T) {
	t.Setenv("NFS_PROFILE_CLIENTCOUNT", "4")

	out, err := run(t, "nfs")
	require.NoError(t, err)
	assert.Contains(t, out, `client_id="node4"`)

	out, err = run(t, "nfs", "--set", "clientCount=1")
	require.NoError(t, err)
	assert.NotContains(t, out, `client_id="node2"`)
}

func TestRender_ValidationErrors(t *testing.T) {
	out, err := run(t, "cluster", "--set", "node_count=11", "--set", "nfsMountDelay=-1")
	require.Error(t, err)
	assert.Empty(t, out)

	var fields []string
	for _, v := range violationsOf(err) {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"node_count", "nfsMountDelay"}, fields)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "invalid parameters")
	assert.Contains(t, buf.String(), "node_count: must be between 1 and 10, got 11")
}

func TestRender_OutputFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "request.xml")

	_, err := run(t, "nfs", "-o", file)
	require.NoError(t, err)
	first, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(first), `client_id="node2"`)

	out, err := run(t, "nfs", "-o", file)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "nfs", "-o", file, "--set", "clientCount=3", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "The following changes to "+file)
	unchanged, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, first, unchanged)

	_, err = run(t, "nfs", "-o", file, "--set", "clientCount=3", "--yes")
	require.NoError(t, err)
	updated, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(updated), `client_id="node3"`)
}

func TestRender_Remote(t *testing.T) {
	server := httptest.NewServer(rest.NewHandler(nil))
	defer server.Close()

	out, err := run(t, "nfs", "--remote", server.URL, "--set", "clientCount=3")
	require.NoError(t, err)
	assert.Contains(t, out, `client_id="node3"`)

	_, err = run(t, "cluster", "--remote", server.URL, "--set", "node_count=0")
	require.Error(t, err)
	require.Len(t, violationsOf(err), 1)
	assert.Equal(t, "node_count", violationsOf(err)[0].Field)
}

func TestParams(t *testing.T) {
	out, err := run(t, "params", "nfs")
	require.NoError(t, err)
	assert.Contains(t, out, "clientCount")
	assert.Contains(t, out, "UBUNTU 20.04")

	out, err = run(t, "params", "cluster")
	require.NoError(t, err)
	assert.NotContains(t, out, "nfsMountDelay")

	out, err = run(t, "params", "cluster", "--advanced")
	require.NoError(t, err)
	assert.Contains(t, out, "nfsMountDelay")

	out, err = run(t, "params", "cluster", "--init", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "node_count: 1")

	out, err = run(t, "params", "nfs", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, "clientCount = 2")

	_, err = run(t, "params", "openstack")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version unknown")
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "chatty", "version")
	assert.Error(t, err)
}
