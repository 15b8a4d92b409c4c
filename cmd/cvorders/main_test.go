package main

import (
	"reflect"
	"testing"
)

func TestWithDefaultCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no args", []string{"cvorders"}, []string{"cvorders", "serve"}},
		{"flags only", []string{"cvorders", "-a", ":9090"}, []string{"cvorders", "serve", "-a", ":9090"}},
		{"explicit command", []string{"cvorders", "migrate", "up"}, []string{"cvorders", "migrate", "up"}},
		{"help", []string{"cvorders", "--help"}, []string{"cvorders", "--help"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withDefaultCommand(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCLICommands(t *testing.T) {
	app := newCLI()
	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
		if cmd.Name == "migrate" && len(cmd.Subcommands) != 2 {
			t.Fatalf("expected up and down subcommands, got %d", len(cmd.Subcommands))
		}
	}
	if !names["serve"] || !names["migrate"] {
		t.Fatalf("unexpected commands %v", names)
	}
}

func TestMigrateRequiresDatabaseURI(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	if err := newCLI().Run([]string{"cvorders", "migrate", "up"}); err == nil {
		t.Fatal("expected missing database uri to be rejected")
	}
}
