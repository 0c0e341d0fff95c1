package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"yatube/service"
)

func runRoot(args ...string) (string, error) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectErr      bool
		expectedOutput string
	}{
		{
			name:           "no arguments prints usage",
			args:           []string{},
			expectedOutput: "Usage:",
		},
		{
			name:           "help lists commands",
			args:           []string{"help"},
			expectedOutput: "serve",
		},
		{
			name:           "version command",
			args:           []string{"version"},
			expectedOutput: "yatube version " + service.Version,
		},
		{
			name:      "unknown command",
			args:      []string{"unknown"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runRoot(tt.args...)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, output, tt.expectedOutput)
		})
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	output, err := runRoot("--help")
	assert.NoError(t, err)
	for _, name := range []string{"serve", "migrate", "user", "group", "cache", "version"} {
		assert.Contains(t, output, name)
	}
}

func TestRealMainExitsOnError(t *testing.T) {
	var code int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(c int) { code = c }

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"yatube", "unknown"}

	RealMain()
	assert.Equal(t, 1, code)
}
