package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/imageio"
	"github.com/rayshard/pathtracer/pkg/scene"
)

func TestResolveSceneBuiltin(t *testing.T) {
	s, err := resolveScene("cornell-box")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotNil(t, s.Camera)
}

func TestResolveSceneUnknown(t *testing.T) {
	_, err := resolveScene("not-a-real-scene")
	assert.Error(t, err)
}

func TestResolveSceneMissingYAMLFile(t *testing.T) {
	_, err := resolveScene("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParseToneMap(t *testing.T) {
	reinhard, err := parseToneMap("Reinhard")
	require.NoError(t, err)
	assert.Equal(t, imageio.ToneMapReinhard, reinhard)

	filmic, err := parseToneMap("FILMIC")
	require.NoError(t, err)
	assert.Equal(t, imageio.ToneMapFilmic, filmic)

	_, err = parseToneMap("aces")
	assert.Error(t, err)
}

func TestMergeConfigPrefersFlagOverDefault(t *testing.T) {
	flagCfg := scene.DefaultConfig()
	flagCfg.Width = 1920 // simulates an explicit --width flag

	fileCfg := scene.DefaultConfig()
	fileCfg.Width = 800
	fileCfg.SceneName = "mirror-checkerboard"

	merged := mergeConfig(flagCfg, fileCfg)
	assert.Equal(t, 1920, merged.Width, "explicit flag value must win over the file/env layer")
	assert.Equal(t, "mirror-checkerboard", merged.SceneName, "untouched flag field should fall back to the file/env layer")
}
