package params

import "strings"

const (
	Ubuntu20 = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU20-64-STD"
	Ubuntu22 = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD"

	imageURNPrefix = "urn:publicid:IDN+"
)

// UbuntuImages are the images the setup scripts are tested with.
var UbuntuImages = []Choice{
	{Value: Ubuntu20, Label: "UBUNTU 20.04"},
	{Value: Ubuntu22, Label: "UBUNTU 22.04"},
}

// IsImageURN reports whether s looks like a disk image URN, e.g.
// urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD.
// Images outside the offered choices are allowed.
func IsImageURN(s string) bool {
	if !strings.HasPrefix(s, imageURNPrefix) {
		return false
	}

	parts := strings.SplitN(strings.TrimPrefix(s, imageURNPrefix), "+", 3)
	return len(parts) == 3 && parts[0] != "" && parts[1] == "image" && parts[2] != ""
}
