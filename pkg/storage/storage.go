// Package storage contains storage interfaces and implementations
package storage

import (
	"context"

	"github.com/buildgrid/buildgrid/pkg/types"
)

// Agent and friends are re-exported so backend signatures read naturally.
type (
	Agent        = types.Agent
	Project      = types.Project
	BuildType    = types.BuildType
	CloudProfile = types.CloudProfile
	CloudImage   = types.CloudImage
)

// AgentIterator is an iterator over agent records. It is closed by explicitly
// calling Stop() or by calling Next() until it returns ErrIteratorDone.
type AgentIterator = Iterator[Agent]

// CloudImageIterator is an iterator over cloud image records belonging to one
// or more profiles.
type CloudImageIterator = Iterator[CloudImage]

// ListAgentsFilter constrains ListAgents. Zero-value fields are ignored.
type ListAgentsFilter struct {
	PoolID         string
	OnlyAuthorized bool
}

// AgentsBackend reads the agent inventory.
type AgentsBackend interface {
	// ListAgents returns every agent matching the filter, ordered by ID.
	// The full candidate set is returned; windowing happens in the caller.
	ListAgents(ctx context.Context, filter ListAgentsFilter) ([]Agent, error)

	// ReadAgents is the streaming variant of ListAgents. The caller must
	// close the iterator, either by consuming it fully or by calling Stop.
	ReadAgents(ctx context.Context, filter ListAgentsFilter) (AgentIterator, error)
}

// ProjectsBackend reads the project hierarchy.
type ProjectsBackend interface {
	// GetProject returns the project with the given ID or ErrNotFound.
	GetProject(ctx context.Context, id string) (Project, error)

	// ListProjects returns all projects ordered by ID.
	ListProjects(ctx context.Context) ([]Project, error)

	// AncestorIDs returns the chain of project IDs from the given project up
	// to the root, starting with the project itself.
	AncestorIDs(ctx context.Context, id string) ([]string, error)
}

// BuildTypesBackend reads build configurations.
type BuildTypesBackend interface {
	// ListBuildTypes returns the build configurations of one project,
	// ordered by ID. An empty projectID lists all of them.
	ListBuildTypes(ctx context.Context, projectID string) ([]BuildType, error)
}

// CloudBackend reads the configured cloud profiles and their image records.
// Live image state comes from the provider, not from here.
type CloudBackend interface {
	// ListCloudProfiles returns every configured profile, ordered by ID.
	ListCloudProfiles(ctx context.Context) ([]CloudProfile, error)

	// ReadCloudImages returns an iterator over the image records of one
	// profile. The caller must close the iterator.
	ReadCloudImages(ctx context.Context, profileID string) (CloudImageIterator, error)
}

// Datastore aggregates every backend the query layer consumes.
type Datastore interface {
	AgentsBackend
	ProjectsBackend
	BuildTypesBackend
	CloudBackend

	// IsReady reports whether the datastore is ready to accept traffic.
	IsReady(ctx context.Context) (ReadinessStatus, error)

	// Close closes the datastore and cleans up any residual resources.
	Close()
}

// ReadinessStatus represents the readiness status of the datastore.
type ReadinessStatus struct {
	// Message is a human-friendly status message for the current datastore status.
	Message string

	IsReady bool
}
