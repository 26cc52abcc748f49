// Package cluster builds the request for a set of identical nodes that
// either get their own extra storage or share NFS storage, optionally
// attached to shared VLANs.
package cluster

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pgrigo01/nfs-profile/pkg/common"
	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/rspec"
	"github.com/pgrigo01/nfs-profile/pkg/setup"
)

// Profile exposes the cluster profile to the profile registry.
type Profile struct{}

func (Profile) Name() string { return "cluster" }

func (Profile) Description() string {
	return "Up to 10 nodes with extra or shared NFS storage, optionally attached to shared VLANs"
}

func (Profile) Parameters() []params.Definition { return Parameters }

func (Profile) Build(v *viper.Viper) (*rspec.Request, error) {
	rsc := &ResourceConfig{}
	if err := params.Decode(v, rsc); err != nil {
		return nil, err
	}
	return Build(rsc)
}

// NodeName returns the name of the i-th node.
func NodeName(i int) string {
	return fmt.Sprintf("node%d", i)
}

// Build validates rsc and constructs the request. Validation errors are
// returned as common.ValidationErrors and no request is built.
//
// All nodes are created first; links for the shared VLANs are added in a
// second pass over the finished node list.
func Build(rsc *ResourceConfig) (*rspec.Request, error) {
	rsc.FillDefaults()

	if err := rsc.Valid(); err != nil {
		return nil, err
	}

	request := rspec.NewRequest()

	fallback := &setup.Fallback{
		DiscoveryAddress: common.ParseIPv4(rsc.DiscoveryAddress),
		ExportPath:       rsc.ExportPath,
		HostName:         StorageHost,
		MountDelay:       rsc.mountDelay(),
	}

	nodes := make([]*rspec.Node, 0, rsc.NodeCount)
	for i := 0; i < rsc.NodeCount; i++ {
		node := request.RawPC(NodeName(i))
		node.SetDiskImage(rsc.OSImage)
		node.SetRoutableControlIP(rsc.RoutableIP)

		if rsc.ExtraDiskSpace > 0 {
			bs := node.Blockstore(fmt.Sprintf("bs%d", i), MountPoint)
			bs.Size = common.GigaBytes(rsc.ExtraDiskSpace)
			node.AddService(rspec.Shell(setup.BlockstoreBootstrap(MountPoint)))
		} else {
			node.AddService(rspec.Shell(fallback.Command(node.ClientID)))
		}

		nodes = append(nodes, node)
	}

	if len(nodes) > 1 {
		lan := request.LAN(LanName)
		lan.SetBestEffort(true)
		lan.SetVlanTagging(true)
		lan.SetLinkMultiplexing(true)
		for _, node := range nodes {
			lan.AddInterface(node.AddInterface())
		}
	}

	for j := range rsc.SharedVlans {
		linkSharedVlan(request, fmt.Sprintf("vlan%d", j), &rsc.SharedVlans[j], nodes)
	}

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent request: %w", err)
	}

	log.WithFields(log.Fields{
		"nodes":        rsc.NodeCount,
		"extra_disk":   rsc.ExtraDiskSpace,
		"shared_vlans": len(rsc.SharedVlans),
	}).Debug("built cluster request")

	return request, nil
}

// linkSharedVlan attaches one new interface of every node to a link for
// vlan. Node i gets the base address with i added to the last octet. The
// octet wraps at 256 without any warning, so a base address close to the
// end of the range yields addresses outside the intended subnet.
func linkSharedVlan(request *rspec.Request, name string, vlan *SharedVlan, nodes []*rspec.Node) {
	link := request.LAN(name)
	link.SetBestEffort(true)
	link.SetVlanTagging(true)
	link.SetLinkMultiplexing(true)

	if vlan.Create {
		link.CreateSharedVlanNamed(vlan.Name)
	} else {
		link.ConnectSharedVlan(vlan.Name)
	}

	base := common.ParseIPv4(vlan.IPAddress)
	mask := common.ParseIPv4(vlan.SubnetMask)
	for i, node := range nodes {
		iface := node.AddInterface()
		iface.SetIPv4(common.OffsetIPv4(base, i).String(), mask.String())
		link.AddInterface(iface)
	}
}
