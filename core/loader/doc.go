// Package loader wires application features into the HTTP server.
//
// A feature is a self-contained module (service, handler, routes) that the
// serve command registers with a Manager; LoadAll then mounts every enabled
// feature onto the Fiber app. Keeping registration behind the Feature
// interface lets modules like 'report' be built and tested on their own and
// keeps the serve command free of per-feature setup.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
