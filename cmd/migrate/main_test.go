package main

import (
	"strings"
	"testing"

	"budgetbuddy/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestRun_arguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "usage"},
		{"unknown command", []string{"sideways"}, "unknown command"},
		{"bad step count", []string{"down", "two"}, "invalid step count"},
		{"zero steps", []string{"down", "0"}, "invalid step count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run(%v) = %v, want error containing %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestRun_requiresPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	err := run([]string{"up"})
	if err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Errorf("expected postgres driver error, got %v", err)
	}
}
