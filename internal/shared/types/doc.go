// Package types provides shared data structures for the DeskShell backend.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool definition, optionally aliased to a command name
//   - Context: Execution context for a single invocation
//   - Result: Standard operation result, rendered to the front-end as-is
//
// Request Types:
//   - InvokeRequest: HTTP command arguments
//   - WSMessage, WSResponse: WebSocket command frames
//
// Example Usage:
//
//	tool := types.Tool{
//	    ID:      "filesystem.read",
//	    Command: "read_file",
//	    Name:    "Read File",
//	}
package types
