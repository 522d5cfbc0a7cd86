package server

// Server defines the lifecycle contract of the process-level server.
//
// Implementations block in [RunServer] until shutdown is requested by a
// signal and release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and background workers and blocks
	// until SIGINT, SIGTERM or SIGQUIT arrives.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
