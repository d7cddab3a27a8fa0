package ctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithValue(t *testing.T) {
	c := Background()
	c = WithValue(c, "requestId", "abc-123")
	require.Equal(t, "abc-123", c.Value("requestId"))
}

func TestWithTimeout(t *testing.T) {
	c, cancel := WithTimeout(Background(), time.Millisecond)
	defer cancel()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not expire")
	}
	require.Error(t, c.Err())
}

func TestWithCancel(t *testing.T) {
	c, cancel := WithCancel(Background())
	require.NoError(t, c.Err())
	cancel()
	require.Error(t, c.Err())
}
