package types

// The node types below are the externally shaped representations produced by
// the connection layer. Field selection and serialization happen outside this
// module; nodes always carry the full set of fields.

type AgentNode struct {
	ID         string
	Name       string
	OS         string
	Enabled    bool
	Authorized bool
	Pool       *PoolRef
}

// PoolRef is a shallow reference to an agent pool, enough for a nested
// resolver to fetch the pool without re-reading the agent.
type PoolRef struct {
	ID string
}

type ProjectNode struct {
	ID       string
	ParentID string
	Name     string
	Archived bool
}

type BuildTypeNode struct {
	ID      string
	Name    string
	Project *ProjectRef
	Paused  bool
}

type ProjectRef struct {
	ID string
}

// CloudImageNode is resolved via a live provider lookup and therefore the
// one node type whose materialization can fail per edge.
type CloudImageNode struct {
	ID        string
	Name      string
	ProfileID string
	PoolID    string
	State     string
	AgentIDs  []string
}

// AgentEnvironment is the local context attached to agent edges. Nested
// resolvers use it instead of re-reading the agent record.
type AgentEnvironment struct {
	PoolID string
	OS     string
}

// ImageInstanceContext is the local context attached to cloud image edges:
// the owning profile, available without the live provider call.
type ImageInstanceContext struct {
	ProfileID string
	PoolID    string
}
