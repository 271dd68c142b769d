package cpu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Sleep(t *testing.T) {
	srv := New()
	sleep, err := srv.Method("sleep")
	require.NoError(t, err)

	testCases := []struct {
		description string
		duration    string
		expectErr   bool
	}{
		{description: "short", duration: "1ms"},
		{description: "zero", duration: "0s"},
		{description: "malformed", duration: "soon", expectErr: true},
		{description: "too long", duration: "1h", expectErr: true},
		{description: "negative", duration: "-1ms", expectErr: true},
	}
	for _, testCase := range testCases {
		output := &SleepOutput{}
		err := sleep(context.Background(), &SleepInput{Duration: testCase.duration}, output)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		expect, _ := time.ParseDuration(testCase.duration)
		assert.Equal(t, expect, output.Slept, testCase.description)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, &SleepInput{Duration: "1s"}, &SleepOutput{}), context.Canceled)
}
