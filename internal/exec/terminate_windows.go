//go:build windows

package exec

import "os"

// Windows has no SIGTERM for arbitrary processes.
func terminate(p *os.Process) error {
	return p.Kill()
}
