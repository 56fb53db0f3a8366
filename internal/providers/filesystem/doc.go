// Package filesystem provides the write_file and read_file commands.
//
// Every path goes through the sandbox resolver before any I/O. Writes replace
// the whole file (mode 0644) and create missing parent directories after the
// resolver has proven the nearest existing ancestor is inside the data
// directory. Reads return UTF-8 text; anything else is an io_failure.
//
// Example Usage:
//
//	ops := filesystem.NewOps(sandbox.NewResolver(locator))
//	registry.Register(filesystem.NewProvider(ops))
package filesystem
