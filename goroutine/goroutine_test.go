package goroutine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLaunch(t *testing.T) {
	ran := false
	err := Launch(context.Background(), func() error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)

	boom := errors.New("boom")
	err = Launch(context.Background(), func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestLaunchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})

	cancel()
	err := Launch(ctx, func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	// Let the abandoned goroutine finish before goleak checks.
	close(release)
}
