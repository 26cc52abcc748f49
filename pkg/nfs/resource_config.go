package nfs

import (
	"strings"

	"github.com/pgrigo01/nfs-profile/pkg/common"
	"github.com/pgrigo01/nfs-profile/pkg/params"
)

// Do not change these unless you change the setup scripts too.
const (
	ServerName     = "nfs"
	LanName        = "nfsLan"
	Directory      = "/nfs"
	BlockstoreName = "nfsBS"
)

const (
	DefaultClientCount      = 2
	DefaultSize             = "200GB"
	DefaultExternalNetworks = "10.0.0.0/8 172.16.0.0/12 192.168.0.0/16"
)

// ResourceConfig holds the parameters of the nfs profile.
type ResourceConfig struct {
	ClientCount          int    `mapstructure:"clientCount" json:"clientCount"`
	OSImage              string `mapstructure:"osImage" json:"osImage"`
	OSServerImage        string `mapstructure:"osServerImage" json:"osServerImage"`
	NFSSize              string `mapstructure:"nfsSize" json:"nfsSize"`
	UsePersistentStorage bool   `mapstructure:"usePersistentStorage" json:"usePersistentStorage"`
	AllowExternalAccess  bool   `mapstructure:"allowExternalAccess" json:"allowExternalAccess"`
	ExternalNetworks     string `mapstructure:"externalNetworks" json:"externalNetworks"`
}

// Parameters are the parameter definitions offered by the portal.
var Parameters = []params.Definition{
	{
		Name:        "clientCount",
		Description: "Number of NFS clients",
		Type:        params.Integer,
		Default:     DefaultClientCount,
	},
	{
		Name:        "osImage",
		Description: "Select OS image for clients",
		Type:        params.Image,
		Default:     params.Ubuntu20,
		Choices:     params.UbuntuImages,
	},
	{
		Name:        "osServerImage",
		Description: "Select OS image for server",
		Type:        params.Image,
		Default:     params.Ubuntu20,
		Choices:     params.UbuntuImages,
	},
	{
		Name:            "nfsSize",
		Description:     "Size of NFS Storage",
		LongDescription: "Size of disk partition to allocate on NFS server",
		Type:            params.String,
		Default:         DefaultSize,
	},
	{
		Name:            "usePersistentStorage",
		Description:     "Use persistent storage",
		LongDescription: "Check to use persistent storage that will remain available after experiment termination",
		Type:            params.Boolean,
		Default:         true,
	},
	{
		Name:            "allowExternalAccess",
		Description:     "Allow external NFS access",
		LongDescription: "Check to allow NFS access from other experiments",
		Type:            params.Boolean,
		Default:         true,
	},
	{
		Name:            "externalNetworks",
		Description:     "Networks allowed for external access",
		LongDescription: "Space-separated list of networks in CIDR notation allowed to access NFS",
		Type:            params.String,
		Default:         DefaultExternalNetworks,
	},
}

// DefaultConfig returns the parameters the portal preselects.
func DefaultConfig() *ResourceConfig {
	return &ResourceConfig{
		ClientCount:          DefaultClientCount,
		OSImage:              params.Ubuntu20,
		OSServerImage:        params.Ubuntu20,
		NFSSize:              DefaultSize,
		UsePersistentStorage: true,
		AllowExternalAccess:  true,
		ExternalNetworks:     DefaultExternalNetworks,
	}
}

func (r *ResourceConfig) FillDefaults() {
	r.OSImage = strings.TrimSpace(r.OSImage)
	r.OSServerImage = strings.TrimSpace(r.OSServerImage)
	r.NFSSize = strings.TrimSpace(r.NFSSize)

	if r.OSImage == "" {
		r.OSImage = params.Ubuntu20
	}

	if r.OSServerImage == "" {
		r.OSServerImage = params.Ubuntu20
	}
}

// Valid checks all parameters and reports every violation it finds.
func (r *ResourceConfig) Valid() error {
	var v common.Violations

	if r.ClientCount < 0 {
		v.Addf("clientCount", "must not be negative, got %d", r.ClientCount)
	}

	if !params.IsImageURN(r.OSImage) {
		v.Addf("osImage", "'%s' is not an image URN", r.OSImage)
	}

	if !params.IsImageURN(r.OSServerImage) {
		v.Addf("osServerImage", "'%s' is not an image URN", r.OSServerImage)
	}

	if _, err := common.ParseSize(r.NFSSize); err != nil {
		v.Addf("nfsSize", "%v", err)
	}

	if r.AllowExternalAccess {
		nets, err := common.ParseCIDRList(r.ExternalNetworks)
		if err != nil {
			v.Addf("externalNetworks", "%v", err)
		} else if len(nets) == 0 {
			v.Addf("externalNetworks", "at least one network is required when external access is allowed")
		}
	}

	return v.Err()
}

// Size returns the block store size in RSpec notation.
func (r *ResourceConfig) Size() (string, error) {
	b, err := common.ParseSize(r.NFSSize)
	if err != nil {
		return "", err
	}
	return common.FormatSize(b), nil
}
