package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeMetricsCmd_RequiresScenarioFlag(t *testing.T) {
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"serve-metrics"})

	err := root.Execute()
	assert.Error(t, err)
}

func TestServeMetricsCmd_FlagsRegistered(t *testing.T) {
	cmd := NewServeMetricsCmd()

	scenarioFlag := cmd.Flags().Lookup("scenario")
	require.NotNil(t, scenarioFlag)
	assert.Equal(t, "s", scenarioFlag.Shorthand)

	addrFlag := cmd.Flags().Lookup("addr")
	require.NotNil(t, addrFlag)
}
