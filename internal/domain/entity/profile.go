// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the user-profile service's view of a principal: display data and
// role, keyed by the same principal ID the auth service issued. The auth
// service never stores roles itself; it reads them from here at token time.
type Profile struct {
	ID        uuid.UUID // Principal ID, assigned by the auth service at registration.
	Name      string    // Display name, 1..100 characters.
	Role      Role      // Access role carried into access-token claims.
	CreatedAt time.Time
	UpdatedAt time.Time
}
