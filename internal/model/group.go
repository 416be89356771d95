package model

// Group is a named identity-directory entity to be mapped onto a course.
// The engine never fetches groups itself; callers hand them in.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassifiedGroup annotates a group with its resolved category and type.
type ClassifiedGroup struct {
	Group
	Category *Category    `json:"-"`
	Type     CategoryType `json:"type"`
}

// GroupPartition buckets a batch of groups by category type, preserving
// input order within each bucket.
type GroupPartition struct {
	Class   []ClassifiedGroup `json:"class"`
	Teacher []ClassifiedGroup `json:"teacher"`
	Project []ClassifiedGroup `json:"project"`
	Ignore  []ClassifiedGroup `json:"ignore"`
	Unknown []ClassifiedGroup `json:"unknown"`
}

// Total returns the number of groups across all buckets.
func (p GroupPartition) Total() int {
	return len(p.Class) + len(p.Teacher) + len(p.Project) + len(p.Ignore) + len(p.Unknown)
}
