package main

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	port := cmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "3000", port.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.False(t, cmd.HasSubCommands())
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"serve"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	require.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRun_RequiresDatabaseURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PG_CONNECTION_URL", "")
	t.Setenv("DATABASE_URL", "")

	cmd := newRootCommand()
	err := run(context.Background(), "", cmd.Flags())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url is required")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
