//go:build !profile

package profiler

import "errors"

// Enabled reports whether scopes are recorded. Build with -tags profile.
const Enabled = false

var errDisabled = errors.New("profiler: built without the profile tag")

func Init(int) {}

// Start returns a shared no-op closer; text layout calls it on every
// regeneration.
func Start(string) func() { return nop }

func nop() {}

func OpenProfilerGraph() (string, error) { return "", errDisabled }
