package cluster

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pgrigo01/nfs-profile/pkg/common"
	"github.com/pgrigo01/nfs-profile/pkg/params"
)

const (
	MinNodes = 1
	MaxNodes = 10

	// StorageHost is the node that serves storage when discovery fails.
	StorageHost = "node0"
	LanName     = "nfsLan"
	MountPoint  = "/mydata"

	DefaultDiscoveryAddress = "10.10.1.1"
	DefaultExportPath       = "/nfs"
	DefaultMountDelay       = 60
)

var (
	// UuidSharedVlan is the namespace for names of shared VLANs created
	// without an explicit name.
	UuidSharedVlan = uuid.NewSHA1(uuid.Nil, []byte("sharedvlan.nfs-profile.cloudlab.us"))
)

// SharedVlan is one entry of the "sharedVlans" parameter.
type SharedVlan struct {
	Create     bool   `mapstructure:"createSharedVlan" json:"createSharedVlan" yaml:"createSharedVlan"`
	Connect    bool   `mapstructure:"connectSharedVlan" json:"connectSharedVlan" yaml:"connectSharedVlan"`
	Name       string `mapstructure:"name" json:"name" yaml:"name"`
	IPAddress  string `mapstructure:"ip_address" json:"ip_address" yaml:"ip_address"`
	SubnetMask string `mapstructure:"subnet_mask" json:"subnet_mask" yaml:"subnet_mask"`
}

// ResourceConfig holds the parameters of the cluster profile.
type ResourceConfig struct {
	NodeCount        int          `mapstructure:"node_count" json:"node_count"`
	OSImage          string       `mapstructure:"osImage" json:"osImage"`
	RoutableIP       bool         `mapstructure:"routableIP" json:"routableIP"`
	ExtraDiskSpace   int          `mapstructure:"extra_disk_space" json:"extra_disk_space"`
	SharedVlans      []SharedVlan `mapstructure:"sharedVlans" json:"sharedVlans"`
	DiscoveryAddress string       `mapstructure:"nfsDiscoveryAddress" json:"nfsDiscoveryAddress"`
	ExportPath       string       `mapstructure:"nfsExportPath" json:"nfsExportPath"`
	MountDelay       int          `mapstructure:"nfsMountDelay" json:"nfsMountDelay"`
}

// Parameters are the parameter definitions offered by the portal.
var Parameters = []params.Definition{
	{
		Name:        "node_count",
		Description: "Number of nodes",
		Type:        params.Integer,
		Default:     MinNodes,
	},
	{
		Name:        "osImage",
		Description: "Select OS image",
		Type:        params.Image,
		Default:     params.Ubuntu22,
		Choices:     params.UbuntuImages,
	},
	{
		Name:            "routableIP",
		Description:     "Routable IP",
		LongDescription: "Add a publicly routable control IP address to every node",
		Type:            params.Boolean,
		Default:         false,
	},
	{
		Name:            "extra_disk_space",
		Description:     "Extra disk space (GB)",
		LongDescription: "Size of an extra block store mounted at " + MountPoint + " on every node. 0 mounts shared NFS storage instead.",
		Type:            params.Integer,
		Default:         0,
	},
	{
		Name:            "sharedVlans",
		Description:     "Shared VLANs",
		LongDescription: "Each entry either creates a shared VLAN other experiments can join, or connects to an existing one by name. Node i gets the base address with i added to the last octet.",
		Type:            params.StructList,
		Default:         []map[string]interface{}{},
	},
	{
		Name:            "nfsDiscoveryAddress",
		Description:     "Shared storage address",
		LongDescription: "Address probed at boot for an existing NFS export",
		Type:            params.String,
		Default:         DefaultDiscoveryAddress,
		Advanced:        true,
	},
	{
		Name:        "nfsExportPath",
		Description: "Shared storage export path",
		Type:        params.String,
		Default:     DefaultExportPath,
		Advanced:    true,
	},
	{
		Name:            "nfsMountDelay",
		Description:     "Shared storage mount delay (seconds)",
		LongDescription: "How long nodes wait for " + StorageHost + " to export storage before mounting it",
		Type:            params.Integer,
		Default:         DefaultMountDelay,
		Advanced:        true,
	},
}

// DefaultConfig returns the parameters the portal preselects.
func DefaultConfig() *ResourceConfig {
	return &ResourceConfig{
		NodeCount:        MinNodes,
		OSImage:          params.Ubuntu22,
		SharedVlans:      []SharedVlan{},
		DiscoveryAddress: DefaultDiscoveryAddress,
		ExportPath:       DefaultExportPath,
		MountDelay:       DefaultMountDelay,
	}
}

func (r *ResourceConfig) FillDefaults() {
	r.OSImage = strings.TrimSpace(r.OSImage)
	if r.OSImage == "" {
		r.OSImage = params.Ubuntu22
	}

	if r.DiscoveryAddress == "" {
		r.DiscoveryAddress = DefaultDiscoveryAddress
	}

	if r.ExportPath == "" {
		r.ExportPath = DefaultExportPath
	}

	for i := range r.SharedVlans {
		vlan := &r.SharedVlans[i]
		vlan.Name = strings.TrimSpace(vlan.Name)
		if vlan.Create && !vlan.Connect && vlan.Name == "" {
			vlan.Name = GeneratedVlanName(i)
		}
	}
}

// GeneratedVlanName is the name given to the i-th shared VLAN if it is
// created without a name. The name only depends on i.
func GeneratedVlanName(i int) string {
	id := uuid.NewSHA1(UuidSharedVlan, []byte(fmt.Sprintf("%d", i)))
	return "vlan-" + strings.ReplaceAll(id.String(), "-", "")[:12]
}

// Valid checks all parameters and reports every violation it finds.
func (r *ResourceConfig) Valid() error {
	var v common.Violations

	if r.NodeCount < MinNodes || r.NodeCount > MaxNodes {
		v.Addf("node_count", "must be between %d and %d, got %d", MinNodes, MaxNodes, r.NodeCount)
	}

	if !params.IsImageURN(r.OSImage) {
		v.Addf("osImage", "'%s' is not an image URN", r.OSImage)
	}

	if r.ExtraDiskSpace < 0 {
		v.Addf("extra_disk_space", "must not be negative, got %d", r.ExtraDiskSpace)
	}

	if common.ParseIPv4(r.DiscoveryAddress) == nil {
		v.Addf("nfsDiscoveryAddress", "'%s' is not an IPv4 address", r.DiscoveryAddress)
	}

	if !path.IsAbs(r.ExportPath) {
		v.Addf("nfsExportPath", "'%s' is not an absolute path", r.ExportPath)
	}

	if r.MountDelay < 0 {
		v.Addf("nfsMountDelay", "must not be negative, got %d", r.MountDelay)
	}

	for i := range r.SharedVlans {
		v.Add(r.SharedVlans[i].valid(fmt.Sprintf("sharedVlans[%d]", i)))
	}

	return v.Err()
}

func (s *SharedVlan) valid(field string) error {
	var v common.Violations

	switch {
	case s.Create && s.Connect:
		v.Addf(field, "cannot both create and connect to a shared VLAN")
	case !s.Create && !s.Connect:
		v.Addf(field, "must either create or connect to a shared VLAN")
	case s.Connect && s.Name == "":
		v.Addf(field+".name", "is required to connect to a shared VLAN")
	}

	if common.ParseIPv4(s.IPAddress) == nil {
		v.Addf(field+".ip_address", "'%s' is not an IPv4 address", s.IPAddress)
	}

	if _, err := common.ParseIPv4Mask(s.SubnetMask); err != nil {
		v.Addf(field+".subnet_mask", "%v", err)
	}

	return v.Err()
}

// mountDelay returns the mount delay as a duration.
func (r *ResourceConfig) mountDelay() time.Duration {
	return time.Duration(r.MountDelay) * time.Second
}
