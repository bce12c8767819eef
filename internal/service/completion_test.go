package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_ResolvesOnce(t *testing.T) {
	c := newCompletion()
	c.resolve(Report{Delivered: 1}, nil)
	c.resolve(Report{Delivered: 2}, errors.New("late"))

	report, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Delivered)

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel must be closed")
	}
}

func TestCompletion_WaitHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newCompletion().Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
