package statecraft

import "github.com/xraph/statecraft/id"

// ID is the primary identifier type for statecraft entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
