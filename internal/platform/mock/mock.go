package mock

import (
	"context"

	"github.com/druarnfield/mcp11/internal/platform"
)

// ---------------------------------------------------------------------------
// SystemChecker: scripted implementation of platform.SystemChecker
// ---------------------------------------------------------------------------

type SystemChecker struct {
	Runtime        platform.Check
	PackageManager platform.Check
	Host           platform.Info
}

// NewSystemChecker returns a checker whose prerequisites all pass.
func NewSystemChecker() *SystemChecker {
	return &SystemChecker{
		Runtime:        platform.Check{OK: true, Message: "node version v20.0.0 meets requirements"},
		PackageManager: platform.Check{OK: true, Message: "npm is available and functional"},
		Host: platform.Info{
			OS:                    "linux",
			Arch:                  "amd64",
			RuntimeVersion:        "v20.0.0",
			PackageManagerVersion: "10.0.0",
		},
	}
}

func (s *SystemChecker) CheckRuntime(context.Context) platform.Check {
	return s.Runtime
}

func (s *SystemChecker) CheckPackageManager(context.Context) platform.Check {
	return s.PackageManager
}

func (s *SystemChecker) Info(context.Context) platform.Info {
	return s.Host
}
