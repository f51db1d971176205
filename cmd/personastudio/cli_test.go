package main

import "testing"

func TestRootCommandWiring(t *testing.T) {
	root := buildRootCommand()

	want := []string{
		"onboard", "list", "show", "create", "edit", "delete",
		"summarize", "sync", "research", "analyze",
		"history", "revert", "export", "import",
		"chat", "refine", "version",
	}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Fatalf("missing subcommand %q", name)
		}
	}
	if !root.SilenceUsage || !root.SilenceErrors {
		t.Fatalf("root command must silence usage and errors")
	}
}

func TestMergeFlagParamsOverlaysOnlySetFlags(t *testing.T) {
	flags := paramFlags{name: "Ada", role: "mathematician"}
	merged := mergeFlagParams(flags.toParams(), paramFlags{role: "mentor"})
	if merged.Name != "Ada" {
		t.Fatalf("unset flag must keep current value, got %q", merged.Name)
	}
	if merged.Role != "mentor" {
		t.Fatalf("set flag must override, got %q", merged.Role)
	}
}
