package gui

// ContextOption configures a Context at creation.
type ContextOption func(*contextOptions)

type contextOptions struct {
	style         Style
	commandMemory int
}

func defaultContextOptions() contextOptions {
	return contextOptions{
		style:         DefaultStyle(),
		commandMemory: DefaultCommandMemory,
	}
}

// WithStyle sets the initial style.
func WithStyle(s Style) ContextOption {
	return func(o *contextOptions) { o.style = s }
}

// WithCommandMemory sets the command buffer budget in bytes.
// Non-positive values keep the default.
func WithCommandMemory(bytes int) ContextOption {
	return func(o *contextOptions) {
		if bytes > 0 {
			o.commandMemory = bytes
		}
	}
}
