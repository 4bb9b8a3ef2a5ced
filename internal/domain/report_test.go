package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestReportIssues(t *testing.T) {
	tests := []struct {
		name       string
		fullReport string
		want       []string
	}{
		{
			name:       "issues present",
			fullReport: `{"score":42,"summary":"meh","issues":["sql injection","dead code"]}`,
			want:       []string{"sql injection", "dead code"},
		},
		{
			name:       "issues key missing",
			fullReport: `{"score":90,"summary":"fine"}`,
			want:       []string{},
		},
		{
			name:       "payload absent",
			fullReport: "",
			want:       []string{},
		},
		{
			name:       "payload not an object",
			fullReport: `[1,2,3]`,
			want:       []string{},
		},
		{
			name:       "payload malformed",
			fullReport: `{"issues": not-json`,
			want:       []string{},
		},
		{
			name:       "issues explicitly null",
			fullReport: `{"issues":null}`,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := AnalysisReport{FullReport: json.RawMessage(tt.fullReport)}
			got := r.Issues()
			if got == nil {
				t.Fatal("Issues() returned nil, want empty slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Issues() = %v, want %v", got, tt.want)
			}
		})
	}
}
