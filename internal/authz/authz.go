// Package authz declares the boundary to the permission system. The query
// layer consults a Filter to keep unauthorized candidates out of collections;
// the decisions themselves are made elsewhere.
package authz

import "context"

// Resource kinds passed to CanView.
const (
	ResourceAgent      = "agent"
	ResourceProject    = "project"
	ResourceBuildType  = "buildType"
	ResourceCloudImage = "cloudImage"
)

// Filter answers visibility questions for the caller bound to ctx.
type Filter interface {
	// CanView reports whether the current caller may see the resource with
	// the given kind and ID. Errors are treated as "not visible".
	CanView(ctx context.Context, kind, id string) (bool, error)

	// VisibleProjectIDs returns the IDs of projects directly granted to the
	// current caller. The result may contain repeats when a project is
	// reachable through several grants.
	VisibleProjectIDs(ctx context.Context) ([]string, error)
}

type allowAll struct{}

// NewAllowAll returns a Filter that admits everything. Used in tests and in
// deployments without a permission system in front.
func NewAllowAll() Filter {
	return allowAll{}
}

func (allowAll) CanView(ctx context.Context, kind, id string) (bool, error) {
	return true, nil
}

func (allowAll) VisibleProjectIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}
