package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "message only",
			d:    Diagnostic{Message: "plain"},
			want: "plain",
		},
		{
			name: "code and group",
			d:    Diagnostic{Code: CodeDuplicateGroup, Message: "redeclared", Group: "FULL"},
			want: "[FULL]: [duplicate-group] redeclared",
		},
		{
			name: "field and suggestions",
			d: Diagnostic{
				Code: CodeMissingColumn, Message: "not found", Group: "h", Field: "frist",
				Suggestions: []string{"first"},
			},
			want: `[h] frist: [missing-column] not found (did you mean "first"?)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestDiagnosticsBuckets(t *testing.T) {
	var d Diagnostics

	d.AddInfo(CodeEmptyBag, "bag empty", "", "Columns")
	d.AddWarning(CodeMissingOutput, "skipped", "h", "")
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddError(CodeMissingColumn, "gone", "h", "x")
	assert.True(t, d.HasErrors())
	assert.Equal(t, 3, d.Len())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)

	require.EqualError(t, d.Error(), "[h] x: [missing-column] gone")

	clone := d.Clone()
	clone.AddWarning(CodeDuplicateGroup, "dup", "h", "")
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, clone.Warnings, 2)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
