// Package registry is the static catalogue of node types. It maps a node
// type tag to its NodeSpec (typed input/output ports plus configuration
// field descriptors) and to the handler that executes nodes of that type.
//
// Both the validator and the executor consult the registry instead of
// branching on type strings: the validator reads specs to check required
// configuration, the executor looks up handlers for dispatch. Specs are
// seeded at startup and are not user-editable.
//
// Handler packages self-register through the Module interface, one module
// per type tag, mirroring how compiled-in modules announce themselves to
// the application at startup.
package registry
