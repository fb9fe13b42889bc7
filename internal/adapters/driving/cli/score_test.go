package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCmd_Use(t *testing.T) {
	assert.Equal(t, "score [question] [answer]", scoreCmd.Use)
}

func TestScoreCmd_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"score", "only-one-arg"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestScoreCmd_NoSavePrintsMetrics(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"score", "--no-save",
		"--source", "Metformin is a first-line medication for type 2 diabetes treatment.",
		"What is the treatment for diabetes?",
		"Metformin is the standard first-line treatment for diabetes [1].",
	})
	defer func() {
		rootCmd.SetArgs(nil)
		scoreSources = nil
		scoreNoSave = false
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Query ID:")
	assert.Contains(t, out, "relevance:")
	assert.Contains(t, out, "overall score:")
}

func TestIsDocumentFile(t *testing.T) {
	assert.True(t, isDocumentFile("notes.txt"))
	assert.True(t, isDocumentFile("README.md"))
	assert.True(t, isDocumentFile("REPORT.TXT"))
	assert.False(t, isDocumentFile("scan.pdf"))
	assert.False(t, isDocumentFile("archive.tar.gz"))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "0123456789...", snippet("0123456789abcdef", 10))
}
