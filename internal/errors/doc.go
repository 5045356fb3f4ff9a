// Package errors defines the error types and exit codes used by wtm.
//
// Commands return *WTMError values built with the constructor helpers;
// main extracts the process exit code with GetExitCode. Wrapped causes
// stay reachable through errors.Is/As via Unwrap.
package errors
