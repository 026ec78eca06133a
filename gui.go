package gui

import (
	"log/slog"
	"os"
)

// Default memory budgets for one frame of UI data.
const (
	DefaultVertexMemory  = 512 * 1024
	DefaultElementMemory = 128 * 1024
	DefaultCommandMemory = 64 * 1024
)

// Budgets holds the fixed byte budgets for the per-frame buffers.
// Buffers are allocated once at these sizes and reused every frame.
type Budgets struct {
	VertexMemory  int // Bytes of Vertex data
	ElementMemory int // Bytes of uint16 indices
	CommandMemory int // Bytes of abstract UI commands
}

// DefaultBudgets returns the budgets used by the demo.
func DefaultBudgets() Budgets {
	return Budgets{
		VertexMemory:  DefaultVertexMemory,
		ElementMemory: DefaultElementMemory,
		CommandMemory: DefaultCommandMemory,
	}
}

// guiLogLevel controls the log level for GUI debug logging.
// Default is LevelInfo, which suppresses Debug messages.
var guiLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for GUI components.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}

// guiLogger is the logger for context, atlas and conversion diagnostics.
var guiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel}))
