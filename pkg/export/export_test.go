package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	content, err := RenderCSV(Dataset{
		Headers: []string{"Reg Number", "Name"},
		Rows:    [][]string{{"REG-001", "Amara Okafor"}, {"REG-002"}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Reg Number,Name", lines[0])
	// Short rows are padded to the header width.
	assert.Equal(t, "REG-002,", lines[2])
}

func TestRenderCSVRequiresHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	require.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	content, err := RenderPDF(Dataset{
		Title:   "CS-201 enrolled students",
		Headers: []string{"Reg Number", "Name"},
		Rows:    [][]string{{"REG-001", "Amara Okafor"}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))
}
