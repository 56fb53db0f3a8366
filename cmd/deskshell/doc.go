// Command deskshell runs the DeskShell command bridge.
//
// Usage:
//
//	deskshell [--config file] serve
//	deskshell [--config file] invoke <command> [key=value...] [--args JSON]
//	deskshell [--config file] where
//
// Running deskshell with no subcommand is the same as serve.
package main
