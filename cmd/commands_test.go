package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvert(t *testing.T) {
	tests := []struct {
		name       string
		opts       convertOptions
		input      string
		wantOut    []string
		wantStderr string
		wantErr    bool
	}{
		{
			name:    "yaml to form",
			opts:    convertOptions{kind: "secret", to: "form", locale: "en"},
			input:   "apiVersion: v1\nkind: Secret\nmetadata:\n  name: api\ndata:\n  token: YWJj\n",
			wantOut: []string{`"key":"token"`, `"value":"abc"`},
		},
		{
			name:    "form to yaml",
			opts:    convertOptions{kind: "configmap", to: "yaml", locale: "en"},
			input:   `{"object":{"apiVersion":"v1","kind":"ConfigMap","metadata":{"name":"app"}},"data":[{"key":"a","value":"1"}]}`,
			wantOut: []string{"kind: ConfigMap", "a: \"1\""},
		},
		{
			name:       "multiple documents warn",
			opts:       convertOptions{kind: "configmap", to: "form", locale: "en"},
			input:      "kind: ConfigMap\n---\nkind: Secret\n",
			wantOut:    []string{`"kind":"ConfigMap"`},
			wantStderr: "warning: Only the first resource in the YAML is used",
		},
		{
			name:       "broken yaml in chinese",
			opts:       convertOptions{kind: "configmap", to: "form", locale: "zh-CN"},
			input:      "data: [oops",
			wantStderr: "YAML 格式错误",
			wantErr:    true,
		},
		{
			name:    "unknown target",
			opts:    convertOptions{kind: "secret", to: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runConvert(tt.opts, []byte(tt.input), &stdout, &stderr)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, stdout.String(), want)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunConvert_FormIsJSON(t *testing.T) {
	var stdout bytes.Buffer
	err := runConvert(convertOptions{kind: "pvc", to: "form"},
		[]byte("kind: PersistentVolumeClaim\nspec:\n  accessModes: [ReadWriteOnce]\n  resources:\n    requests:\n      storage: 1Gi\n"),
		&stdout, &bytes.Buffer{})
	require.NoError(t, err)

	var form map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &form))
	assert.Equal(t, "1Gi", form["storage"])
}

func TestConvertCmd_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: ConfigMap\ndata:\n  k: v\n"), 0o600))

	cmd := newConvertCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--kind", "cm", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"key":"k"`)
}

func TestConvertCmd_ReadsStdin(t *testing.T) {
	cmd := newConvertCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("kind: ConfigMap\ndata:\n  k: v\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--kind", "configmap", "-"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"value":"v"`)
}

func TestSampleCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "secret", args: []string{"--kind", "secret", "-n", "team"}, want: []string{"kind: Secret", "namespace: team"}},
		{name: "generic kind", args: []string{"--kind", "Deployment"}, want: []string{"kind: Deployment", "namespace: default"}},
		{name: "kind is required", args: []string{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newSampleCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
