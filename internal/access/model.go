package access

import "time"

// Grant is a directed edge: the viewer may read all of the owner's
// documents. Grants are not transitive and never imply the reverse edge.
type Grant struct {
	OwnerID   string
	ViewerID  string
	CreatedAt time.Time
}
