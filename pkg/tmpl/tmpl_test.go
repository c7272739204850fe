package tmpl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "static prompt",
			tmpl: "> ",
			data: PromptData{},
			want: "> ",
		},
		{
			name: "prompt fields",
			tmpl: "[{{ .Count }}] {{ .Dir }}> ",
			data: PromptData{Cwd: "/srv/api", Dir: "api", Count: 3},
			want: "[3] api> ",
		},
		{
			name: "base function",
			tmpl: "{{ base .Cwd }}$ ",
			data: PromptData{Cwd: "/srv/api"},
			want: "api$ ",
		},
		{
			name: "map data",
			tmpl: "hello {{ .Name }}",
			data: map[string]string{"Name": "world"},
			want: "hello world",
		},
		{
			name:    "invalid syntax",
			tmpl:    "{{ .Dir ",
			data:    PromptData{},
			wantErr: true,
		},
		{
			name:    "unknown field",
			tmpl:    "{{ .Missing }}",
			data:    PromptData{},
			wantErr: true,
		},
		{
			name:    "missing map key",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTildeHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}

	assert.Equal(t, "~", tildeHome(home))
	assert.Equal(t, filepath.Join("~", "src"), tildeHome(filepath.Join(home, "src")))
	assert.Equal(t, "/elsewhere", tildeHome("/elsewhere"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("{{ home .Cwd }} ({{ .Count }})> "))
	require.Error(t, Validate("{{ .Host }}> "))
}

func TestNewPromptData(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	data := NewPromptData(7)
	assert.Equal(t, 7, data.Count)
	assert.Equal(t, filepath.Base(data.Cwd), data.Dir)
	assert.NotEmpty(t, data.Cwd)
}
