// Package nfs builds the request for an NFS server with persistent storage
// and a set of clients.
//
// The server ("nfs") carries a block store mounted at /nfs and, when external
// access is allowed, a routable control address so clients in other
// experiments can reach it. Clients are named node1..nodeN and share the LAN
// "nfsLan" with the server.
package nfs

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pgrigo01/nfs-profile/pkg/common"
	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/rspec"
	"github.com/pgrigo01/nfs-profile/pkg/setup"
)

// Profile exposes the nfs profile to the profile registry.
type Profile struct{}

func (Profile) Name() string { return "nfs" }

func (Profile) Description() string {
	return "NFS server with (persistent) storage that can be accessed from other experiments"
}

func (Profile) Parameters() []params.Definition { return Parameters }

func (Profile) Build(v *viper.Viper) (*rspec.Request, error) {
	rsc := &ResourceConfig{}
	if err := params.Decode(v, rsc); err != nil {
		return nil, err
	}
	return Build(rsc)
}

// Build validates rsc and constructs the request. Validation errors are
// returned as common.ValidationErrors and no request is built.
func Build(rsc *ResourceConfig) (*rspec.Request, error) {
	rsc.FillDefaults()

	if err := rsc.Valid(); err != nil {
		return nil, err
	}

	size, err := rsc.Size()
	if err != nil {
		return nil, err
	}

	var networks []common.IpCidr
	if rsc.AllowExternalAccess {
		networks, err = common.ParseCIDRList(rsc.ExternalNetworks)
		if err != nil {
			return nil, err
		}
	}

	request := rspec.NewRequest()

	// The NFS network. All these options are required.
	lan := request.LAN(LanName)
	lan.SetBestEffort(true)
	lan.SetVlanTagging(true)
	lan.SetLinkMultiplexing(true)

	server := request.RawPC(ServerName)
	server.SetDiskImage(rsc.OSServerImage)
	server.SetRoutableControlIP(rsc.AllowExternalAccess)
	lan.AddInterface(server.AddInterface())

	bs := server.Blockstore(BlockstoreName, Directory)
	bs.Size = size
	bs.Persistent = rsc.UsePersistentStorage

	server.AddService(rspec.Shell(setup.ServerCommand(rsc.AllowExternalAccess, networks)))

	for i := 1; i <= rsc.ClientCount; i++ {
		node := request.RawPC(fmt.Sprintf("node%d", i))
		node.SetDiskImage(rsc.OSImage)
		lan.AddInterface(node.AddInterface())
		node.AddService(rspec.Shell(setup.ClientCommand()))
	}

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent request: %w", err)
	}

	log.WithFields(log.Fields{
		"clients":    rsc.ClientCount,
		"size":       size,
		"persistent": rsc.UsePersistentStorage,
		"external":   rsc.AllowExternalAccess,
	}).Debug("built nfs request")

	return request, nil
}
