package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolution_GetMegaPixels performs table-driven tests on the GetMegaPixels method.
func TestResolution_GetMegaPixels(t *testing.T) {
	testCases := []struct {
		name     string
		alias    string
		res      Resolution
		expected float64
	}{
		// 1920 * 1080 = 2,073,600 -> 2.07 MP
		{name: "Full HD 1080p", alias: "1080p", expected: 2.07},
		// 3840 * 2160 = 8,294,400 -> 8.29 MP
		{name: "4K UHD", alias: "4k", expected: 8.29},
		// 1280 * 1024 = 1,310,720 -> 1.31 MP
		{name: "1MP (5:4)", alias: "1mp", expected: 1.31},
		{name: "Zero Width", res: Resolution{Rows: 1080}, expected: 0.0},
		{name: "Negative Height", res: Resolution{Rows: -1080, Cols: 1920}, expected: 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.res
			if tc.alias != "" {
				var ok bool
				res, ok = GetResolution(tc.alias)
				require.True(t, ok)
			}
			assert.Equal(t, tc.expected, res.GetMegaPixels())
		})
	}
}

func TestResolutionString(t *testing.T) {
	res, ok := GetResolution("720p")

	require.True(t, ok)
	assert.Equal(t, "HD 720p (1280x720, 0.92MP)", res.String())
}

func TestResolutionAliasesSorted(t *testing.T) {
	aliases := ResolutionAliases()

	assert.IsIncreasing(t, aliases)
	assert.Contains(t, aliases, "1080p")
	assert.Len(t, aliases, len(resolutions))
}

func TestFrameSize(t *testing.T) {
	tests := []struct {
		name               string
		cfg                Config
		wantRows, wantCols int
		wantOK             bool
	}{
		{"explicit frame wins", Config{Rows: 10, Cols: 20, Resolution: "1080p"}, 10, 20, true},
		{"preset", Config{Resolution: "1080p"}, 1080, 1920, true},
		{"per-file frames", Config{}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols, ok := tt.cfg.FrameSize()

			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, tt.wantCols, cols)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestValidateRejectsUnknownResolution(t *testing.T) {
	cfg := Default()
	cfg.Input = "labels"
	cfg.Resolution = "1081p"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown resolution "1081p"`)
}
