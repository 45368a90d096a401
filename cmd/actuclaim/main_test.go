package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd == nil {
		t.Fatal("Expected root command to be created")
	}

	if cmd.Use != "actuclaim" {
		t.Errorf("Expected root command use to be 'actuclaim', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}

	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Execute(t *testing.T) {
	resetFlags()
	cmd := rootCmd
	cmd.SetArgs([]string{})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	if err != nil {
		t.Errorf("Expected no error for root command execution, got %v", err)
	}

	if buf.String() == "" {
		t.Error("Expected root command to show help/usage")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"calculate",
		"validate",
		"pji",
		"compare",
		"sensitivity",
		"rates",
		"serve",
		"version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		if !registered[name] {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestRatesSubcommands(t *testing.T) {
	ratesCmd, _, err := rootCmd.Find([]string{"rates"})
	if err != nil {
		t.Fatalf("Expected rates command, got %v", err)
	}

	var names []string
	for _, c := range ratesCmd.Commands() {
		names = append(names, c.Name())
	}
	got := strings.Join(names, ",")
	for _, want := range []string{"load", "stats", "average", "refresh", "validate"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected rates subcommand %q, got %s", want, got)
		}
	}
}

func TestInvalidCommand(t *testing.T) {
	resetFlags()
	cmd := rootCmd
	cmd.SetArgs([]string{"invalid-command"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestInvalidFlag(t *testing.T) {
	resetFlags()
	cmd := rootCmd
	cmd.SetArgs([]string{"calculate", "--invalid-flag"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestVersionCommand(t *testing.T) {
	resetFlags()
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Expected no error for version command, got %v", err)
	}
	if !strings.Contains(buf.String(), "actuclaim dev") {
		t.Errorf("Expected version output, got %q", buf.String())
	}
}
