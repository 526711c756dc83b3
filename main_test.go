package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"serve"}, {"countries"}, {"states"}, {"cities"}, {"city"},
		{"itinerary"}, {"guides"}, {"ride"}, {"keys", "set"}, {"keys", "show"}, {"cache", "purge"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("provider"))
}

func TestArgValidation(t *testing.T) {
	tests := [][]string{
		{"states"},
		{"cities", "India"},
		{"ride", "Delhi"},
		{"keys", "set", "gemini"},
	}
	for _, args := range tests {
		root := newRootCmd()
		root.SetArgs(args)
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		assert.Error(t, root.Execute(), args)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]int64{"purged": 3}))
	assert.Equal(t, "{\n  \"purged\": 3\n}\n", buf.String())
}

func TestSetupLogger(t *testing.T) {
	t.Setenv("APP_ENV", "")

	var buf bytes.Buffer
	setupLogger(&buf, "production").Info("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	setupLogger(&buf, "development").Debug("dev")
	assert.Contains(t, buf.String(), "dev")
}
