// Where: internal/infra/docker/docker.go
// What: Container name lookup through the Docker Engine API.
// Why: Inside a container the hostname is the short id; the engine knows the real name.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Client defines the subset of Docker SDK methods used by this package.
type Client interface {
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	Close() error
}

// NewClient constructs a Docker SDK client using environment defaults.
func NewClient() (Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// Namer resolves container ids (or hostnames) to container names.
type Namer struct {
	client Client
}

// NewNamer wraps a Docker client.
func NewNamer(client Client) *Namer {
	return &Namer{client: client}
}

// ContainerName returns the name of the container identified by id,
// without the leading slash the engine reports.
func (n *Namer) ContainerName(ctx context.Context, id string) (string, error) {
	if n == nil || n.client == nil {
		return "", fmt.Errorf("docker client not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("container id is required")
	}
	info, err := n.client.ContainerInspect(ctx, id)
	if err != nil {
		return "", fmt.Errorf("inspect container %s: %w", id, err)
	}
	if info.ContainerJSONBase == nil {
		return "", fmt.Errorf("inspect container %s: empty response", id)
	}
	name := strings.TrimPrefix(strings.TrimSpace(info.Name), "/")
	if name == "" {
		return "", fmt.Errorf("container %s has no name", id)
	}
	return name, nil
}

// Close releases the underlying client.
func (n *Namer) Close() error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.client.Close()
}
