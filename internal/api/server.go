package api

import (
	"context"

	"github.com/vytor/mathverse/internal/services"
)

// Server holds the handler dependencies. AuthService is nil when the
// service runs single-user.
type Server struct {
	GameService     services.GameService
	ProgressService services.ProgressService
	AuthService     services.AuthService
	// Ready reports whether the store is reachable.
	Ready      func(context.Context) error
	CORSOrigin string
}
