package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompareMode(t *testing.T) {
	tests := []struct {
		input    string
		expected CompareMode
		wantErr  bool
	}{
		{"percent", ModePercent, false},
		{"percentage", ModePercent, false},
		{"PERCENT", ModePercent, false},
		{"0", ModePercent, false},
		{"speedup", ModeSpeedup, false},
		{"multiplicative", ModeSpeedup, false},
		{"1", ModeSpeedup, false},
		{"ratio", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		mode, err := ParseCompareMode(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, mode, "input %q", tt.input)
	}
}

func TestCompareMode_String(t *testing.T) {
	assert.Equal(t, "percent", ModePercent.String())
	assert.Equal(t, "speedup", ModeSpeedup.String())
	assert.Equal(t, "unknown", CompareMode(99).String())
}

func TestSummaryDocument_HasRegion(t *testing.T) {
	doc := &SummaryDocument{
		Path: "test.summary",
		Records: []RegionRecord{
			{Name: "[ESMF]", Indent: 0},
			{Name: "dyn_run", Indent: 2},
		},
	}

	assert.True(t, doc.HasRegion("dyn_run"))
	assert.False(t, doc.HasRegion("phys_run"))
	assert.Equal(t, "[ESMF]", doc.First().Name)
}
