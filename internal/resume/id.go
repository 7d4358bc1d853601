package resume

import "github.com/google/uuid"

// IDGenerator produces session-unique opaque entry ids.
type IDGenerator func() string

// NewID is the default generator.
var NewID IDGenerator = func() string {
	return uuid.NewString()
}
