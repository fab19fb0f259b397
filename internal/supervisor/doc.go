// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package supervisor builds the suture supervision tree that runs ToyVerse's
long-lived goroutines.

The tree has three layers under a "toyverse" root:

	toyverse
	├── data-layer       periodic DuckDB maintenance (checkpoints)
	├── messaging-layer  interaction event consumer
	└── api-layer        HTTP server

A failing service is restarted by its layer supervisor with exponential
backoff; the other layers keep running. Supervisor events are logged through
sutureslog on top of the zerolog slog bridge.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	tree.AddMessagingService(consumer)
	err = tree.Serve(ctx)
*/
package supervisor
