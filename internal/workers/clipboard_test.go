package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	mu       sync.Mutex
	text     string
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeClipboard) ReadAll() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.readErr
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	f.text = text
	return nil
}

func (f *fakeClipboard) get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

func TestClipboardClearer_ClearsAfterDelay(t *testing.T) {
	clip := &fakeClipboard{text: "s3cret"}
	c := NewClipboardClearer(context.Background(), clip, "s3cret", 10*time.Millisecond, logger.Nop())

	start := time.Now()
	c.Run()

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Empty(t, clip.get())
	<-c.Done()
}

func TestClipboardClearer_ContextCancelClearsEarly(t *testing.T) {
	clip := &fakeClipboard{text: "s3cret"}
	ctx, cancel := context.WithCancel(context.Background())
	c := NewClipboardClearer(ctx, clip, "s3cret", time.Hour, logger.Nop())

	go c.Run()
	cancel()

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("clearer did not stop after cancel")
	}
	assert.Empty(t, clip.get())
}

func TestClipboardClearer_LeavesForeignContent(t *testing.T) {
	clip := &fakeClipboard{text: "something else"}
	c := NewClipboardClearer(context.Background(), clip, "s3cret", 0, logger.Nop())

	c.Run()

	assert.Equal(t, "something else", clip.get())
	assert.Zero(t, clip.writes)
}

func TestClipboardClearer_Errors(t *testing.T) {
	t.Run("read", func(t *testing.T) {
		clip := &fakeClipboard{text: "s3cret", readErr: errors.New("no display")}
		NewClipboardClearer(context.Background(), clip, "s3cret", 0, logger.Nop()).Run()
		assert.Equal(t, "s3cret", clip.get())
	})

	t.Run("write", func(t *testing.T) {
		clip := &fakeClipboard{text: "s3cret", writeErr: errors.New("no display")}
		c := NewClipboardClearer(context.Background(), clip, "s3cret", 0, logger.Nop())
		c.Run()
		<-c.Done()
		assert.Equal(t, "s3cret", clip.get())
	})
}

func TestWorkers_WithClipboardClearer(t *testing.T) {
	clip := &fakeClipboard{text: "a"}
	ws := NewWorkers(NewClipboardClearer(context.Background(), clip, "a", 0, logger.Nop()))
	ws.Add(&mockWorker{})

	ws.Run()
	require.Empty(t, clip.get())
}
