// Package testutil provides helpers shared by the smith test suites.
//
// This package includes helpers for:
//   - Capturing stdout during test execution (CaptureOutput)
//   - Creating temporary directories and fixture files (TempDir, WriteFile)
//   - Collecting output written from background goroutines (SyncBuffer)
//   - Driving time-dependent code deterministically (FakeClock)
//   - Comparing colored output as plain text (StripANSI)
//
// All functions that take a *testing.T call t.Helper().
package testutil
