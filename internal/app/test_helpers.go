package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/palette"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for testing. It returns the app,
// the report output and the log output.
func SetupAppTest(t *testing.T, cfg *Config, models ...colormodel.ColorModel) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(outBuffer, logBuffer, cfg, palette.NewLoader(), models...)

	t.Cleanup(func() {
		if os.Getenv("RAMPCON_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
