/*
Package monitoring provides metrics collection for the backend.

# Overview

Prometheus-based metrics for the HTTP bridge, command invocations and the
WebSocket channel. Each Metrics value owns a private registry; nothing is
registered globally.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "read_file")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
