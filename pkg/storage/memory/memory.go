// Package memory provides an ephemeral, memory-backed implementation of
// storage.Datastore. Instances may be safely shared by multiple goroutines.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/buildgrid/buildgrid/pkg/storage"
)

var tracer = otel.Tracer("buildgrid/pkg/storage/memory")

// StorageOption configures a Datastore instance.
type StorageOption func(dataStore *Datastore)

// Datastore holds the domain records in plain maps. Listings are returned
// ordered by ID; IDs are ULIDs, so the order is also creation order.
type Datastore struct {
	mu sync.RWMutex

	agents        map[string]storage.Agent
	projects      map[string]storage.Project
	buildTypes    map[string]storage.BuildType
	cloudProfiles map[string]storage.CloudProfile

	// map: profile id => image records of that profile
	cloudImages map[string][]storage.CloudImage
}

var _ storage.Datastore = (*Datastore)(nil)

// New creates a new empty Datastore.
func New(opts ...StorageOption) *Datastore {
	ds := &Datastore{
		agents:        make(map[string]storage.Agent),
		projects:      make(map[string]storage.Project),
		buildTypes:    make(map[string]storage.BuildType),
		cloudProfiles: make(map[string]storage.CloudProfile),
		cloudImages:   make(map[string][]storage.CloudImage),
	}

	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

// WithAgents seeds the datastore with agent records.
func WithAgents(agents ...storage.Agent) StorageOption {
	return func(ds *Datastore) {
		for _, a := range agents {
			ds.agents[a.ID] = a
		}
	}
}

// WithProjects seeds the datastore with project records.
func WithProjects(projects ...storage.Project) StorageOption {
	return func(ds *Datastore) {
		for _, p := range projects {
			ds.projects[p.ID] = p
		}
	}
}

// WithBuildTypes seeds the datastore with build configuration records.
func WithBuildTypes(buildTypes ...storage.BuildType) StorageOption {
	return func(ds *Datastore) {
		for _, bt := range buildTypes {
			ds.buildTypes[bt.ID] = bt
		}
	}
}

// WithCloudProfile seeds one profile together with its image records.
func WithCloudProfile(profile storage.CloudProfile, images ...storage.CloudImage) StorageOption {
	return func(ds *Datastore) {
		ds.cloudProfiles[profile.ID] = profile
		ds.cloudImages[profile.ID] = append(ds.cloudImages[profile.ID], images...)
	}
}

// ListAgents see [storage.AgentsBackend].ListAgents.
func (s *Datastore) ListAgents(ctx context.Context, filter storage.ListAgentsFilter) ([]storage.Agent, error) {
	_, span := tracer.Start(ctx, "memory.ListAgents")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]storage.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		if filter.PoolID != "" && a.PoolID != filter.PoolID {
			continue
		}
		if filter.OnlyAuthorized && !a.Authorized {
			continue
		}
		agents = append(agents, a)
	}

	sort.Slice(agents, func(i, j int) bool {
		return agents[i].ID < agents[j].ID
	})
	return agents, nil
}

// ReadAgents see [storage.AgentsBackend].ReadAgents.
func (s *Datastore) ReadAgents(ctx context.Context, filter storage.ListAgentsFilter) (storage.AgentIterator, error) {
	_, span := tracer.Start(ctx, "memory.ReadAgents")
	defer span.End()

	agents, err := s.ListAgents(ctx, filter)
	if err != nil {
		return nil, err
	}
	return storage.NewStaticIterator(agents), nil
}

// GetProject see [storage.ProjectsBackend].GetProject.
func (s *Datastore) GetProject(ctx context.Context, id string) (storage.Project, error) {
	_, span := tracer.Start(ctx, "memory.GetProject")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return storage.Project{}, storage.ErrNotFound
	}
	return p, nil
}

// ListProjects see [storage.ProjectsBackend].ListProjects.
func (s *Datastore) ListProjects(ctx context.Context) ([]storage.Project, error) {
	_, span := tracer.Start(ctx, "memory.ListProjects")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]storage.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})
	return projects, nil
}

// AncestorIDs see [storage.ProjectsBackend].AncestorIDs.
func (s *Datastore) AncestorIDs(ctx context.Context, id string) ([]string, error) {
	_, span := tracer.Start(ctx, "memory.AncestorIDs")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var chain []string
	for id != "" {
		p, ok := s.projects[id]
		if !ok {
			return nil, storage.ErrNotFound
		}
		chain = append(chain, p.ID)
		id = p.ParentID
	}
	return chain, nil
}

// ListBuildTypes see [storage.BuildTypesBackend].ListBuildTypes.
func (s *Datastore) ListBuildTypes(ctx context.Context, projectID string) ([]storage.BuildType, error) {
	_, span := tracer.Start(ctx, "memory.ListBuildTypes")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	buildTypes := make([]storage.BuildType, 0, len(s.buildTypes))
	for _, bt := range s.buildTypes {
		if projectID != "" && bt.ProjectID != projectID {
			continue
		}
		buildTypes = append(buildTypes, bt)
	}

	sort.Slice(buildTypes, func(i, j int) bool {
		return buildTypes[i].ID < buildTypes[j].ID
	})
	return buildTypes, nil
}

// ListCloudProfiles see [storage.CloudBackend].ListCloudProfiles.
func (s *Datastore) ListCloudProfiles(ctx context.Context) ([]storage.CloudProfile, error) {
	_, span := tracer.Start(ctx, "memory.ListCloudProfiles")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]storage.CloudProfile, 0, len(s.cloudProfiles))
	for _, p := range s.cloudProfiles {
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

// ReadCloudImages see [storage.CloudBackend].ReadCloudImages.
func (s *Datastore) ReadCloudImages(ctx context.Context, profileID string) (storage.CloudImageIterator, error) {
	_, span := tracer.Start(ctx, "memory.ReadCloudImages")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.cloudProfiles[profileID]; !ok {
		return nil, storage.ErrNotFound
	}

	images := make([]storage.CloudImage, len(s.cloudImages[profileID]))
	copy(images, s.cloudImages[profileID])

	sort.Slice(images, func(i, j int) bool {
		return images[i].ID < images[j].ID
	})
	return storage.NewStaticIterator(images), nil
}

// IsReady see [storage.Datastore].IsReady.
func (s *Datastore) IsReady(ctx context.Context) (storage.ReadinessStatus, error) {
	return storage.ReadinessStatus{IsReady: true}, nil
}

// Close does not do anything for Datastore.
func (s *Datastore) Close() {}
