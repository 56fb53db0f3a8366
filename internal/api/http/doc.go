// Package http provides the HTTP handlers of the command bridge.
//
// Endpoints:
//   - GET  /                  service banner
//   - GET  /health            registry stats and data-root availability
//   - GET  /commands          services, tools and command aliases
//   - POST /invoke/:command   JSON object of arguments in, result out
//
// Failed commands keep the result body and map its kind to a status:
// outside_sandbox 403, root_unavailable 503, io_failure 500, bad arguments
// 400, unknown command 404.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, resolver)
//	router.POST("/invoke/:command", handlers.Invoke)
package http
