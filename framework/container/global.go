package container

// defaultContainer backs the opt-in process-wide accessor. The
// ordinary instance-based API is the default way to use this package;
// Default exists for programs that genuinely want one shared engine.
var defaultContainer *Container

// Default returns the process-wide engine, creating it on first use.
// It follows the package's single-goroutine model: synchronize
// externally if multiple goroutines may touch it.
func Default() *Container {
	if defaultContainer == nil {
		defaultContainer = New()
	}
	return defaultContainer
}

// ResetDefault drops the process-wide engine; the next Default call
// creates a fresh one. No other teardown happens.
func ResetDefault() {
	defaultContainer = nil
}
