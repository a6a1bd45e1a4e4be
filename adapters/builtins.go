package adapters

type BuiltInAdapterType = string

const (
	InlineAdapterType BuiltInAdapterType = "inline"
	HTTPAdapterType   BuiltInAdapterType = "http"
)

// RegisterBuiltins registers all built-in adapters on r by default
// or only the specific ones if keys are provided
func RegisterBuiltins(r *Registry, adapters ...BuiltInAdapterType) {
	if len(adapters) == 0 {
		adapters = append(adapters, InlineAdapterType, HTTPAdapterType)
	}

	for _, key := range adapters {
		switch key {
		case InlineAdapterType:
			RegisterInline(r)
		case HTTPAdapterType:
			RegisterHTTP(r)
		}
	}
}
