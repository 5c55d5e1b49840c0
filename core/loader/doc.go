// Package loader provides the plugin-like feature loading system for the status API.
//
// Each feature implements the Feature interface, which defines its enablement and
// route registration logic.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry of available features. It handles registration via
// Register() and loading of enabled features via LoadAll().
package loader
