package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config file)
	ExitDataError   = 3 // Data error (unknown reader, invalid dataset or ratings file)
)
