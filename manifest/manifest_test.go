package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleManifest = `name: blinky
device: ice40-up5k-sg48
top: gateware/blinky.v
sources:
  - path: gateware/pll.v
    language: verilog
include_paths:
  - gateware/include
signals:
  - name: led
    pins: [A1]
  - name: data
    pins: [B1, B2, B3]
    attributes: [PULLUP]
    resource: gpio
constraints:
  - "# extra\nset_frequency sys_clk 100"
clocks:
  - signal: sys_clk
    period: 10.0
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(cwd) })
	dir, err := os.Getwd()
	require.NoError(t, err)
	return dir
}

func TestRead(t *testing.T) {
	path := writeManifest(t, exampleManifest)

	m, err := Read(path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, "blinky", m.Name)
	assert.Equal(t, "ice40-up5k-sg48", m.Device)
	assert.Equal(t, filepath.Join(base, "gateware", "blinky.v"), m.Top)
	require.Len(t, m.Sources, 1)
	assert.Equal(t, filepath.Join(base, "gateware", "pll.v"), m.Sources[0].Path)
	assert.Equal(t, "verilog", m.Sources[0].Language)
	assert.Equal(t, []string{filepath.Join(base, "gateware", "include")}, m.IncludePaths)
	require.Len(t, m.Signals, 2)
	assert.Equal(t, SignalPins{Name: "led", Pins: []string{"A1"}}, m.Signals[0])
	assert.Equal(t, SignalPins{
		Name:       "data",
		Pins:       []string{"B1", "B2", "B3"},
		Attributes: []string{"PULLUP"},
		Resource:   "gpio",
	}, m.Signals[1])
	assert.Equal(t, []string{"# extra\nset_frequency sys_clk 100"}, m.Constraints)
	assert.Equal(t, []Clock{{Signal: "sys_clk", Period: 10.0}}, m.Clocks)
}

func TestReadRelativeManifestPath(t *testing.T) {
	// Reading `design.yaml` from the working directory must yield absolute
	// file paths. The build changes into the build directory before it
	// touches them, so working directory relative paths would dangle.
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile("design.yaml", []byte(exampleManifest), 0644))

	m, err := Read("design.yaml")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(m.Top))
	assert.Equal(t, filepath.Join(dir, "gateware", "blinky.v"), m.Top)
	require.Len(t, m.Sources, 1)
	assert.Equal(t, filepath.Join(dir, "gateware", "pll.v"), m.Sources[0].Path)
	assert.Equal(t, []string{filepath.Join(dir, "gateware", "include")}, m.IncludePaths)
}

func TestReadAbsoluteTop(t *testing.T) {
	top := filepath.Join(t.TempDir(), "top.v")
	path := writeManifest(t, "name: x\ndevice: ice40-up5k-sg48\ntop: "+top+"\n")

	m, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, top, m.Top)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read")
}

func TestReadMalformedYaml(t *testing.T) {
	path := writeManifest(t, "device: [unclosed\n")
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to parse")
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			name:     "no device",
			manifest: "top: top.v\n",
			want:     "no device given",
		},
		{
			name:     "no top",
			manifest: "device: ice40-up5k-sg48\n",
			want:     "no top verilog file given",
		},
		{
			name:     "source without path",
			manifest: "device: ice40-up5k-sg48\ntop: top.v\nsources:\n  - language: verilog\n",
			want:     "source with an empty path",
		},
		{
			name:     "signal without name",
			manifest: "device: ice40-up5k-sg48\ntop: top.v\nsignals:\n  - pins: [A1]\n",
			want:     "signal with an empty name",
		},
		{
			name:     "signal without pins",
			manifest: "device: ice40-up5k-sg48\ntop: top.v\nsignals:\n  - name: led\n",
			want:     "signal \"led\" has no pins",
		},
		{
			name:     "clock without signal",
			manifest: "device: ice40-up5k-sg48\ntop: top.v\nclocks:\n  - period: 10.0\n",
			want:     "clock with an empty signal name",
		},
		{
			name:     "clock with zero period",
			manifest: "device: ice40-up5k-sg48\ntop: top.v\nclocks:\n  - signal: sys_clk\n    period: 0\n",
			want:     "clock \"sys_clk\" has period 0ns, expected > 0",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeManifest(t, test.manifest)
			_, err := Read(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Invalid manifest")
			assert.Contains(t, err.Error(), test.want)
		})
	}
}
