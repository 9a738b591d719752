//go:build unix

package ghunt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginCommand_StaysInForegroundGroup(t *testing.T) {
	t.Parallel()

	tool := &Tool{Path: "ghunt"}
	cmd := tool.loginCommand(context.Background())

	if cmd.SysProcAttr != nil {
		assert.False(t, cmd.SysProcAttr.Setpgid, "login must share the terminal's process group")
	}
	assert.Equal(t, []string{"ghunt", "login"}, cmd.Args)
	assert.Equal(t, SignalTimeout, cmd.WaitDelay)
}

func TestPrepare_UsesOwnGroup_When_Captured(t *testing.T) {
	t.Parallel()

	cmd := (&Tool{}).prepare(context.Background(), "ghunt", "email", "a@b.com")

	if assert.NotNil(t, cmd.SysProcAttr) {
		assert.True(t, cmd.SysProcAttr.Setpgid)
	}
	assert.NotNil(t, cmd.Cancel)
}
