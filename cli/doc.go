// Package cli contains the command line interface for cmortab.
//
// # Usage
//
// The CLI parses, validates, queries, and converts CMOR table files:
//
//	cmortab validate Tables/CMIP5_cfMon
//	cmortab fmt json Tables/CMIP5_cfMon
//	cmortab list --kind=variable --where='"alt40" in dimensions' Tables/CMIP5_cfMon
//	cmortab find clcalipso Tables/CMIP5_cfMon
//	cmortab browse Tables/CMIP5_cfMon
//	cmortab export Tables/CMIP5_cfMon -o cfMon.nc
//
// # Configuration
//
// Flag defaults may be stored in a JSON configuration file located at
// the user configuration directory (e.g. ~/.config/cmortab/config.json).
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o cmortab .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/cmortab/pprof)
package cli
