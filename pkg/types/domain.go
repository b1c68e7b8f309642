package types

import "time"

// Agent is a build agent record as the datastore holds it.
type Agent struct {
	ID         string
	Name       string
	PoolID     string
	OS         string
	Enabled    bool
	Authorized bool
	LastSeen   time.Time
}

// Project is a node in the project hierarchy. RootProjectID parents have
// ParentID == "".
type Project struct {
	ID       string
	ParentID string
	Name     string
	Archived bool
}

// BuildType is a build configuration belonging to exactly one project.
type BuildType struct {
	ID        string
	ProjectID string
	Name      string
	Paused    bool
}

// CloudProfile groups the cloud images configured for one provider account.
type CloudProfile struct {
	ID        string
	ProjectID string
	Name      string
	Provider  string
}

// CloudImage identifies an image within a profile. Two profiles may expose
// the same underlying image, so listings across profiles must deduplicate by
// ImageKey.
type CloudImage struct {
	ID        string
	ProfileID string
	Name      string
	PoolID    string
}

// ImageKey is the identity under which cloud images are deduplicated across
// profiles.
func (i CloudImage) ImageKey() string {
	return i.PoolID + "/" + i.Name
}
