//go:build nostack

package errors

// captureStack is compiled out under the "nostack" build tag; AppError.Stack
// stays empty and no runtime.Callers cost is paid on error construction.
func captureStack(int) string {
	return ""
}
