package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/fsearch/internal/fileuri"
	"github.com/hyperjump/fsearch/internal/models"
)

func testResponse(t *testing.T) (*models.FindResponse, string) {
	t.Helper()
	root := t.TempDir()
	return &models.FindResponse{
		Results: []string{
			fileuri.Resolve(root, "a.txt"),
			fileuri.Resolve(root, "dir/b.txt"),
		},
		Total:     2,
		QueryTime: 7,
		Pattern:   "txt",
	}, root
}

func TestWriteResults_JSON(t *testing.T) {
	response, _ := testResponse(t)
	var buf bytes.Buffer
	if err := WriteResults(&buf, response, OutputJSON); err != nil {
		t.Fatalf("WriteResults(json): %v", err)
	}
	var decoded models.FindResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Total != 2 || decoded.Pattern != "txt" || decoded.QueryTime != 7 {
		t.Errorf("decoded: %+v", decoded)
	}
	if len(decoded.Results) != 2 || decoded.Results[1] != response.Results[1] {
		t.Errorf("results: got %v", decoded.Results)
	}
}

func TestWriteResults_Compact(t *testing.T) {
	response, _ := testResponse(t)
	var buf bytes.Buffer
	if err := WriteResults(&buf, response, OutputCompact); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != response.Results[0] || lines[1] != response.Results[1] {
		t.Errorf("compact output: %q", buf.String())
	}
}

func TestWriteResults_Text(t *testing.T) {
	response, root := testResponse(t)
	var buf bytes.Buffer
	if err := WriteResults(&buf, response, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `Found 2 files matching "txt" in 7ms`) {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, filepath.Join(root, "dir", "b.txt")) {
		t.Errorf("expected native path in output: %q", out)
	}
	if strings.Contains(out, "file://") {
		t.Errorf("text output should show paths, not URIs: %q", out)
	}
}

func TestWriteResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, &models.FindResponse{Results: []string{}}, OutputCompact); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"compact", OutputCompact, false},
		{"json", OutputJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
