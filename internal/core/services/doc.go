// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO; their only third-party
// dependencies are uuid generation and filesystem watching.
package services
