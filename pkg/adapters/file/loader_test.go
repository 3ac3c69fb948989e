package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/circuit/pkg/adapters/file"
	"github.com/aretw0/circuit/pkg/domain"
	contract "github.com/aretw0/circuit/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_Contract(t *testing.T) {
	want := domain.Scene{
		Name: "lamp",
		Components: []domain.Component{
			{ID: "src", Kind: domain.KindPowerSource, Label: "Battery"},
			{ID: "sw", Kind: domain.KindSwitch, Label: "Wall switch"},
			{ID: "lamp", Kind: domain.KindLight, Label: "Desk lamp"},
			{ID: "R1", Kind: domain.KindResistor},
		},
		Links: []domain.Link{
			{From: "src.live", To: "R1.a"},
			{From: "R1.b", To: "sw.common"},
			{From: "sw.l2", To: "lamp.a"},
			{From: "lamp.b", To: "src.neutral"},
		},
	}

	contract.SceneLoaderContractTest(t, file.New(filepath.Join("testdata", "lamp.yaml")), want)
}

func TestFileLoader_DefaultsNameToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	doc := "components:\n  - {id: src, kind: power_source}\nlinks:\n  - src.live -> src.neutral\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	scene, err := file.New(path).LoadScene()
	require.NoError(t, err)

	assert.Equal(t, "bench", scene.Name)
	assert.Equal(t, []domain.Link{{From: "src.live", To: "src.neutral"}}, scene.Links)
}

func TestFileLoader_MissingFile(t *testing.T) {
	_, err := file.New(filepath.Join(t.TempDir(), "nope.yaml")).LoadScene()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    *domain.Scene
		wantErr error
	}{
		{
			name: "json is yaml",
			doc:  `{"name": "j", "components": [{"id": "src", "kind": "power_source"}]}`,
			want: &domain.Scene{
				Name:       "j",
				Components: []domain.Component{{ID: "src", Kind: domain.KindPowerSource}},
			},
		},
		{
			name: "shorthand tolerates spacing",
			doc:  "links:\n  - \"R1.b->R2.a\"\n",
			want: &domain.Scene{
				Links: []domain.Link{{From: "R1.b", To: "R2.a"}},
			},
		},
		{
			name:    "empty document",
			doc:     "",
			wantErr: domain.ErrInvalidScene,
		},
		{
			name:    "unknown field",
			doc:     "components:\n  - {id: src, kind: power_source, voltage: 12}\n",
			wantErr: domain.ErrInvalidScene,
		},
		{
			name:    "malformed shorthand",
			doc:     "components: []\nlinks:\n  - R1.b R2.a\n",
			wantErr: domain.ErrInvalidScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := file.Parse([]byte(tt.doc))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileLoader_InvalidFixture(t *testing.T) {
	_, err := file.New(filepath.Join("testdata", "invalid.yaml")).LoadScene()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidScene)
	assert.Contains(t, err.Error(), "voltage")
}
