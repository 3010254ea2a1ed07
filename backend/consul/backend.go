package consul

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/sectorfs/backend"
	"github.com/mwantia/sectorfs/data"
)

// ConsulBackend stores objects as Consul KV pairs below a key prefix.
//
// Limitations:
// - Consul KV has a 512KB limit per value
// - Appends use check-and-set and fail with data.ErrConflict on concurrent writers
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	// Configuration
	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string `yaml:"address"`

	// Token for Consul ACL authentication (optional)
	Token string `yaml:"token"`

	// Datacenter to use (optional)
	Datacenter string `yaml:"datacenter"`

	// Namespace for Consul Enterprise (optional)
	Namespace string `yaml:"namespace"`

	// Prefix for all keys in Consul KV (default: "sectorfs")
	Prefix string `yaml:"prefix"`
}

// NewConsulBackend creates a new Consul-backed sector backend
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "sectorfs"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Returns the identifier name defined for this backend
func (*ConsulBackend) GetName() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend
func (cb *ConsulBackend) Open(ctx context.Context) error {
	leader, err := cb.client.Status().Leader()
	if err != nil {
		return fmt.Errorf("%w: %v", data.ErrNotMounted, err)
	}

	if leader == "" {
		return fmt.Errorf("%w: consul cluster has no leader", data.ErrNotMounted)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend
func (cb *ConsulBackend) GetCapabilities() *backend.VirtualBackendCapabilities {
	return &backend.VirtualBackendCapabilities{
		Capabilities: []backend.VirtualBackendCapability{
			backend.CapabilitySectorStorage,
			backend.CapabilityRename,
			backend.CapabilityPersistent,
		},
		// Consul KV has a default limit of 512KB per value
		MaxObjectSize: 500 * 1024,
	}
}

// buildKey constructs the full Consul KV key from the object name
func (cb *ConsulBackend) buildKey(name string) string {
	return strings.Trim(cb.config.Prefix, "/") + "/" + name
}

func (cb *ConsulBackend) checkSize(name string, size int) error {
	if limit := cb.GetCapabilities().MaxObjectSize; int64(size) > limit {
		return fmt.Errorf("%w: '%s' would grow to %d bytes", data.ErrTooLarge, name, size)
	}

	return nil
}
