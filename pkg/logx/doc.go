// Package logx configures bizcal's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//   - Hot-reloadable sinks (Service.Apply swaps outputs at runtime)
package logx
