package publish

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		url    string
		errMsg string
	}{
		{name: "empty", url: "", errMsg: "required"},
		{name: "bad scheme", url: "ftp://example.com", errMsg: "unsupported publish url scheme"},
		{name: "no host", url: "http://", errMsg: "has no host"},
		{name: "unparseable", url: "http://[::1", errMsg: "failed to parse URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Options{URL: tc.url}.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}

	assert.NoError(t, Options{URL: "ws://localhost:3000/socket.io/"}.Validate())
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{URL: "http://localhost"}.withDefaults()

	assert.Equal(t, "/", o.Namespace)
	assert.Equal(t, DefaultEvent, o.Event)
	assert.Equal(t, DefaultTimeout, o.Timeout)

	custom := Options{Namespace: "/viewer", Event: "ramp", Timeout: time.Second}.withDefaults()
	assert.Equal(t, "/viewer", custom.Namespace)
	assert.Equal(t, "ramp", custom.Event)
	assert.Equal(t, time.Second, custom.Timeout)
}

func TestPublish_InvalidOptions(t *testing.T) {
	_, err := Publish(context.Background(), Options{}, nil)
	assert.ErrorContains(t, err, "publish url is required")
}
