// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD and reported by the
// server's /api/version endpoint and the client's version command.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo constructs [BuildInfo], replacing blank values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
