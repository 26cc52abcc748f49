// Package setup generates the shell commands nodes run at boot.
//
// The commands are opaque to the rest of the tool. They either call the
// setup scripts shipped in the profile repository (checked out at
// /local/repository on every node) or are short inline shell snippets.
package setup

import (
	"fmt"
	"net"
	"path"
	"time"

	"bitbucket.org/creachadair/shell"

	"github.com/pgrigo01/nfs-profile/pkg/common"
)

const (
	RepositoryPath = "/local/repository"
	ServerScript   = RepositoryPath + "/nfs-server.sh"
	ClientScript   = RepositoryPath + "/nfs-client.sh"

	// ReadyMarker is written into a freshly prepared block store mount.
	ReadyMarker = ".ready"

	probeTimeout = 5 * time.Second
)

func runScript(script string, args ...string) string {
	return shell.Join(append([]string{"sudo", "/bin/bash", script}, args...))
}

// ServerCommand starts the NFS server. With external access enabled the
// export is opened to the given networks.
func ServerCommand(externalAccess bool, networks []common.IpCidr) string {
	if !externalAccess {
		return runScript(ServerScript)
	}

	return runScript(ServerScript,
		"--external-access=yes",
		"--allowed-networks="+common.JoinCIDRs(networks),
	)
}

// ClientCommand mounts the export of the server named "nfs".
func ClientCommand() string {
	return runScript(ClientScript)
}

// BlockstoreBootstrap prepares a block store mount: it creates the mount
// directory, opens its permissions and writes a marker file. Running it
// twice has the same effect as running it once.
func BlockstoreBootstrap(mountPoint string) string {
	dir := shell.Quote(mountPoint)
	marker := shell.Quote(path.Join(mountPoint, ReadyMarker))

	return fmt.Sprintf("sudo mkdir -p %s && sudo chmod 777 %s && echo ready | sudo tee %s > /dev/null", dir, dir, marker)
}

// Fallback describes how a node without its own storage finds shared storage.
type Fallback struct {
	// DiscoveryAddress is probed for an existing NFS export.
	DiscoveryAddress net.IP
	// ExportPath is the exported directory, it is mounted at the same path.
	ExportPath string
	// HostName is the node that serves storage if discovery fails.
	HostName string
	// MountDelay is how long the other nodes wait for the host to come up.
	MountDelay time.Duration
}

// IsHost reports whether node takes the host branch of the fallback.
func (f *Fallback) IsHost(node string) bool {
	return node == f.HostName
}

// Command returns the fallback command for node.
//
// The command probes the discovery address and mounts its export if it
// answers. Otherwise the host node starts the NFS server itself and every
// other node sleeps for MountDelay before mounting from the host. There is
// no retry, and a failed mount is not reported anywhere.
func (f *Fallback) Command(node string) string {
	discovery := f.DiscoveryAddress.String()
	probe := fmt.Sprintf("timeout %d showmount -e %s > /dev/null 2>&1", int(probeTimeout.Seconds()), discovery)

	var otherwise string
	if f.IsHost(node) {
		otherwise = runScript(ServerScript)
	} else {
		otherwise = fmt.Sprintf("sleep %d && %s", int(f.MountDelay.Seconds()), mountCommand(f.HostName, f.ExportPath))
	}

	return fmt.Sprintf("if %s; then %s; else %s; fi", probe, mountCommand(discovery, f.ExportPath), otherwise)
}

func mountCommand(host, exportPath string) string {
	dir := shell.Quote(exportPath)
	return fmt.Sprintf("sudo mkdir -p %s && sudo mount -t nfs %s %s", dir, shell.Quote(host+":"+exportPath), dir)
}
