// Package services implements the driving port interfaces.
// Services contain the core business logic: the question pipeline
// (retrieve, filter, synthesise, parse) and review summarisation.
// They orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external infrastructure of their own.
package services
