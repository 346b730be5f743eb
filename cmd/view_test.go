package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/resew-dev/resew/internal/model"
)

func TestViewCmd(t *testing.T) {
	stub := runCommand(t, newViewCmd)

	require.NotNil(t, stub.viewArgs)
	assert.Equal(t, m.Path(".resew-reports"), stub.viewArgs.Reports)
}

func TestViewCmd_RejectsArgs(t *testing.T) {
	cmd := newViewCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestNewViewCmd(t *testing.T) {
	cmd := newViewCmd()

	assert.Equal(t, "view", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}
