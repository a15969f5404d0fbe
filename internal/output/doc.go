// Package output formats aeon3md command results and maps failures to
// process exit codes.
//
// A Printer writes either styled text for people or JSON for scripts,
// depending on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Converted 42 items", "files": 47})
//
// In JSON mode errors are written as {"error": "...", "code": N}.
//
// Exit codes:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, missing input file
//	output.ExitSystemError // 2: I/O failures while reading or writing
//	output.ExitCorruptData // 3: unreadable .aeon envelope or project JSON
package output
