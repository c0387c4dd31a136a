package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Store     string `json:"store"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion reports the running build and which store backs it
// @Summary Version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(version, storeDriver string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		GoVersion: runtime.Version(),
		Store:     storeDriver,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
