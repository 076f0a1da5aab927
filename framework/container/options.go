package container

// GetOption configures a single Get call.
type GetOption func(*getOptions)

type getOptions struct {
	storage            string
	args               map[string]any
	makeIfNotAvailable bool
}

func applyGetOptions(opts []GetOption) getOptions {
	o := getOptions{makeIfNotAvailable: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FromStorage pins the lookup to the named backend instead of probing
// all of them. An unknown name fails with StorageNotFound.
func FromStorage(name string) GetOption {
	return func(o *getOptions) { o.storage = name }
}

// WithArguments supplies call-time argument overrides; they win over
// registered arguments on key collision.
func WithArguments(args map[string]any) GetOption {
	return func(o *getOptions) { o.args = args }
}

// WithoutMake disables the build-on-demand fallback: an alias unknown
// to every backend fails with NotFound instead of being constructed.
func WithoutMake() GetOption {
	return func(o *getOptions) { o.makeIfNotAvailable = false }
}
