package cli

import "testing"

func TestVersionDefault(t *testing.T) {
	// Release builds override this via ldflags; the fallback must never
	// be empty.
	if version == "" {
		t.Error("version default must be non-empty")
	}
}

func TestVersionCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
}
