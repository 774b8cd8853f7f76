package config

import (
	"os"
	"sync"
)

var (
	inDockerOnce sync.Once
	inDocker     bool
)

// IsRunningInDocker reports whether the process runs inside a Docker container,
// detected by the /.dockerenv marker. The answer is computed once.
func IsRunningInDocker() bool {
	inDockerOnce.Do(func() {
		_, err := os.Stat("/.dockerenv")
		inDocker = err == nil
	})
	return inDocker
}

// ResolveHostForDocker maps loopback database hosts to host.docker.internal when
// running in a container, so PGHOST=localhost still reaches a Postgres on the host.
func ResolveHostForDocker(host string) string {
	if !IsRunningInDocker() {
		return host
	}
	switch host {
	case "localhost", "127.0.0.1":
		return "host.docker.internal"
	}
	return host
}
