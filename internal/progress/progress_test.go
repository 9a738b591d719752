package progress

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsLabel_When_Started(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	stop := Spinner{Out: &out}.Start(context.Background(), "Investigating a@b.com")

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Investigating a@b.com")
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	stop()
}

func TestSpinner_StopReturns_When_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	stop := Spinner{Out: &out}.Start(ctx, "waiting")
	cancel()

	finished := make(chan struct{})
	go func() {
		stop()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not return after cancel")
	}
}

func TestModel_ClearsView_When_Stopped(t *testing.T) {
	t.Parallel()

	m := newModel("label", lipgloss.NewStyle())
	assert.True(t, strings.HasSuffix(m.View(), " label"))

	next, cmd := m.Update(stopMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestModel_AdvancesFrame_On_Tick(t *testing.T) {
	t.Parallel()

	m := newModel("label", lipgloss.NewStyle())
	before := m.View()
	next, cmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, cmd)
	assert.NotEqual(t, before, next.View())

	_, ok := m.spinner.Tick().(spinner.TickMsg)
	assert.True(t, ok)
}

func TestNone_StopIsNoop(t *testing.T) {
	t.Parallel()

	stop := None{}.Start(context.Background(), "x")
	assert.NotPanics(t, stop)
}
