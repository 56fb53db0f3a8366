// Package ws provides the WebSocket command channel.
//
// Each text frame is a JSON object decoded with sonic:
//
//	{"id": "1", "command": "read_file", "args": {"path": "notes.md"}}
//
// and is answered, possibly out of order, by a frame with the same id:
//
//	{"type": "result", "id": "1", "success": true, "value": "..."}
//
// Frames run concurrently, each on its own goroutine; writes to the
// connection are serialized. {"type": "ping"} is answered with
// {"type": "pong"}. A "system" frame carrying the connection ID is sent on
// connect.
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, logger, cfg.Security.AllowOrigins)
//	router.GET("/ipc", handler.HandleConnection)
package ws
