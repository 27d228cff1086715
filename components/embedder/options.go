package embedder

// Options holds the configuration shared by Embedder implementations.
type Options struct {
	// provider specifies the embedding service in use (e.g. "OpenAI")
	provider Provider
	// model specifies the embedding model to use
	model string
	// dimensions is the fixed output vector dimension D
	dimensions int
}

// Option is a function type for configuring embedder Options.
// It follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithProvider(provider Provider) Option {
	return func(o *Options) {
		o.provider = provider
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func WithDimensions(dimensions int) Option {
	return func(o *Options) {
		o.dimensions = dimensions
	}
}

func (i Options) Provider() Provider {
	return i.provider
}

func (i Options) Model() string {
	return i.model
}

func (i Options) Dimensions() int {
	return i.dimensions
}
