package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/patchsim/domain"
)

func TestOutputFormatResolver_Determine(t *testing.T) {
	r := NewOutputFormatResolver()

	tests := []struct {
		name            string
		format          string
		json, yaml, csv bool
		want            domain.OutputFormat
		wantErr         bool
	}{
		{name: "default text", want: domain.OutputFormatText},
		{name: "format name", format: "yaml", want: domain.OutputFormatYAML},
		{name: "json shortcut", json: true, want: domain.OutputFormatJSON},
		{name: "csv shortcut matching format", format: "csv", csv: true, want: domain.OutputFormatCSV},
		{name: "two shortcuts", json: true, yaml: true, wantErr: true},
		{name: "shortcut contradicts format", format: "text", json: true, wantErr: true},
		{name: "unknown format", format: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Determine(tt.format, tt.json, tt.yaml, tt.csv)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
