package backend

// BackendCapability represents a capability that a backend can provide

import "slices"

type VirtualBackendCapability string

const (
	// Core capability by backend
	CapabilitySectorStorage VirtualBackendCapability = "sector_storage"

	// Extension capabilities per 'sector-storage' backend
	CapabilityRename       VirtualBackendCapability = "rename"
	CapabilityNativeAppend VirtualBackendCapability = "native_append"
	CapabilityPersistent   VirtualBackendCapability = "persistent"
)

func GetAllCapabilities() *VirtualBackendCapabilities {
	return &VirtualBackendCapabilities{
		Capabilities: []VirtualBackendCapability{
			CapabilitySectorStorage,
			CapabilityRename,
			CapabilityNativeAppend,
			CapabilityPersistent,
		},
	}
}

// VirtualBackendCapabilities describes what a backend supports
type VirtualBackendCapabilities struct {
	Capabilities []VirtualBackendCapability

	// Largest object the backend accepts, 0 means unlimited
	MaxObjectSize int64
}

// Contains checks if a capability is supported
func (vbc *VirtualBackendCapabilities) Contains(cap VirtualBackendCapability) bool {
	return slices.Contains(vbc.Capabilities, cap)
}
