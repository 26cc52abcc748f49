package version

import "fmt"

// (potentially) set by makefile
var (
	Version   = "unknown"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the build metadata reported by the version command and the status endpoint.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}
}

func UserAgent() string {
	return fmt.Sprintf("nfs-profile/%s-g%s", Version, GitCommit)
}
