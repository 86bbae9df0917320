package vm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "running", want: StatusRunning},
		{in: "stopped", want: StatusStopped},
		{in: "paused", wantErr: true},
		{in: "Running", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStatus(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApply_KeepsUnsetFields(t *testing.T) {
	owner := uuid.New()
	m := New("web-1", StatusRunning, 2, 4096, decimal.NewFromInt(10), &owner)
	before := m.UpdatedAt

	name := "web-2"
	status := StatusStopped
	m.Apply(Changes{Name: &name, Status: &status})

	assert.Equal(t, "web-2", m.Name)
	assert.Equal(t, StatusStopped, m.Status)
	assert.Equal(t, 2, m.CPU)
	assert.Equal(t, 4096, m.RAM)
	assert.True(t, m.Cost.Equal(decimal.NewFromInt(10)))
	assert.False(t, m.UpdatedAt.Before(before))
}
