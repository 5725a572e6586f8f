package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/specialistvlad/rampcon/internal/app"
	"github.com/specialistvlad/rampcon/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PalettePaths(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{"-p", "a.hcl", "-palette", "dir", "b.hcl", "c.hcl"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, []string{"dir", "a.hcl", "b.hcl", "c.hcl"}, cfg.PalettePaths)
	assert.Equal(t, report.FormatHex, cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParse_AdHocPalette(t *testing.T) {
	// --- Arrange ---
	args := []string{
		"-model", "hsv", "-count", "5",
		"-aux", "step=360/5",
		"-set", "h=x*step", "-set", "s=x==0?0:1", "-set", "v=1",
		"-format", "json", "-workers", "3",
		"-publish-url", "http://localhost:3000", "-publish-timeout", "2s",
	}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "hsv", cfg.Model)
	assert.Equal(t, uint32(5), cfg.Count)
	assert.Equal(t, []app.Assignment{{Name: "step", Source: "360/5"}}, cfg.Aux)
	assert.Equal(t, []app.Assignment{
		{Name: "h", Source: "x*step"},
		{Name: "s", Source: "x==0?0:1"},
		{Name: "v", Source: "1"},
	}, cfg.Set)
	assert.Equal(t, report.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, "http://localhost:3000", cfg.Publish.URL)
	assert.Equal(t, 2*time.Second, cfg.Publish.Timeout)
	assert.Equal(t, "palette", cfg.Publish.Event)
	assert.Equal(t, app.DefaultMaxHTTPCount, cfg.MaxHTTPCount)
}

func TestParse_UsageAndHelp(t *testing.T) {
	for _, args := range [][]string{{}, {"-h"}} {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse(args, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "unknown flag", args: []string{"-nope"}, errMsg: "flag provided but not defined"},
		{name: "malformed set", args: []string{"-model", "hsv", "-set", "h"}, errMsg: "expected name=expression"},
		{name: "negative count", args: []string{"-model", "hsv", "-count", "-1"}, errMsg: "invalid value"},
		{name: "count overflow", args: []string{"-model", "hsv", "-count", "4294967296"}, errMsg: "invalid count"},
		{name: "zero http max count", args: []string{"-http-port", "8080", "-http-max-count", "0"}, errMsg: "invalid http-max-count"},
		{name: "log format", args: []string{"-log-format", "xml", "p.hcl"}, errMsg: "invalid log-format"},
		{name: "log level", args: []string{"-log-level", "loud", "p.hcl"}, errMsg: "invalid log-level"},
		{name: "report format", args: []string{"-format", "svg", "p.hcl"}, errMsg: "unknown report format"},
		{name: "set without model", args: []string{"-set", "h=1", "p.hcl"}, errMsg: "require -model"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errMsg)
		})
	}
}

func TestAssignmentsFlag_String(t *testing.T) {
	var f assignmentsFlag
	require.NoError(t, f.Set("a=1"))
	require.NoError(t, f.Set(" b = x + 1"))

	assert.Equal(t, "a=1,b= x + 1", f.String())
}
