package commands

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_CancelledPromptKeepsNextLine(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := newLineReader(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.ReadLine(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = pw.Write([]byte("  yes \n")) }()

	got, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yes", got, "the line must reach the next prompt, not the abandoned one")
}

func TestLineReader_EOF(t *testing.T) {
	r := newLineReader(strings.NewReader("rock\npaper"))
	ctx := context.Background()

	got, err := r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rock", got)

	got, err = r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paper", got, "a final unterminated line is still returned")

	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
