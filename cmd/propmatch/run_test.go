package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestRunAnalysis_EndToEnd drives the whole pipeline from files on disk:
// CSV in, matched pairs and diagnostic table out.
func TestRunAnalysis_EndToEnd(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "subjects.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"id,treated,age\n"+
			"T1,1,31\n"+
			"T2,1,42\n"+
			"T3,1,53\n"+
			"C1,0,30\n"+
			"C2,0,44\n"+
			"C3,0,55\n"+
			"C4,0,68\n"), 0o600))

	cfgFile := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(
		"data: "+csvPath+"\n"+
			"id_column: id\n"+
			"group_column: treated\n"+
			"treatment_label: \"1\"\n"+
			"control_label: \"0\"\n"+
			"covariates: [age]\n"), 0o600))
	cfgPath = cfgFile

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runAnalysis(cmd))

	out := buf.String()
	assert.Contains(t, out, "algorithm: nearest-neighbor")
	assert.Contains(t, out, "pairs: 3")
	assert.Contains(t, out, "propensity-score")
	assert.Contains(t, out, "largest-distance pair")
}

// TestRunAnalysis_ExclusionAndErrors verifies an exclusion shrinks the pool
// and a typo in the exclusion list surfaces the unknown subject.
func TestRunAnalysis_ExclusionAndErrors(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "subjects.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"id,treated,age\n"+
			"T1,1,31\n"+
			"T2,1,42\n"+
			"T3,1,53\n"+
			"C1,0,30\n"+
			"C2,0,44\n"+
			"C3,0,55\n"+
			"C4,0,68\n"), 0o600))

	cfgFile := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(
		"data: "+csvPath+"\n"+
			"id_column: id\n"+
			"group_column: treated\n"+
			"treatment_label: \"1\"\n"+
			"covariates: [age]\n"+
			"exclude: [T3]\n"), 0o600))
	cfgPath = cfgFile

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, runAnalysis(cmd))
	assert.Contains(t, buf.String(), "pairs: 2")

	require.NoError(t, os.WriteFile(cfgFile, []byte(
		"data: "+csvPath+"\n"+
			"id_column: id\n"+
			"group_column: treated\n"+
			"treatment_label: \"1\"\n"+
			"covariates: [age]\n"+
			"exclude: [NOPE]\n"), 0o600))

	err := runAnalysis(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}
