// Where: internal/infra/hostinfo/hostinfo.go
// What: Hostname and local address resolution.
// Why: Isolate os/net lookups so the gatherer can be tested without a network.
package hostinfo

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
)

// IPResolver is the subset of *net.Resolver used here.
type IPResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Resolver resolves the machine's hostname and the address it maps to.
type Resolver struct {
	Hostname func() (string, error)
	Lookup   IPResolver
}

// New returns a Resolver backed by the OS hostname and the default resolver.
func New() *Resolver {
	return &Resolver{Hostname: os.Hostname, Lookup: net.DefaultResolver}
}

// HostName returns the machine's hostname.
func (r *Resolver) HostName() (string, error) {
	hostname := os.Hostname
	if r != nil && r.Hostname != nil {
		hostname = r.Hostname
	}
	name, err := hostname()
	if err != nil {
		return "", fmt.Errorf("resolve hostname: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("resolve hostname: empty hostname")
	}
	return name, nil
}

// LocalAddress resolves the hostname and returns its first IPv4 address.
func (r *Resolver) LocalAddress(ctx context.Context) (string, error) {
	name, err := r.HostName()
	if err != nil {
		return "", err
	}
	var lookup IPResolver = net.DefaultResolver
	if r != nil && r.Lookup != nil {
		lookup = r.Lookup
	}
	addrs, err := lookup.LookupIPAddr(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolve address of %s: %w", name, err)
	}
	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", fmt.Errorf("resolve address of %s: no IPv4 address", name)
}
