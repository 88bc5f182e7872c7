package browser

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"neptis/internal/errs"
	"neptis/internal/mocks"
	"neptis/internal/models"
	"neptis/internal/vfs"
)

var base = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func setupBrowser(t *testing.T, opts ...Option) (*Browser, *mocks.MockFileAPI, afero.Fs) {
	api := mocks.NewMockFileAPI(t)
	v := vfs.New(api, vfs.Options{
		LookupTTL:    10 * time.Second,
		LookupSize:   64,
		DumpTTL:      10 * time.Second,
		DumpMaxBytes: 1 << 20,
	})
	local := afero.NewMemMapFs()
	return New(v, local, opts...), api, local
}

func listing() []models.Node {
	return []models.Node{
		{Path: "/photos/data/old.txt", Kind: models.NodeFile, Size: 10, Atime: base.Add(-time.Hour)},
		{Path: "/photos/data/b-dir", Kind: models.NodeDirectory, Atime: base.Add(-2 * time.Hour)},
		{Path: "/photos/data/new.txt", Kind: models.NodeFile, Size: 20, Atime: base},
		{Path: "/photos/data/a-dir", Kind: models.NodeDirectory, Atime: base.Add(-2 * time.Hour)},
		{Path: "/photos/data/recent-dir", Kind: models.NodeDirectory, Atime: base.Add(time.Minute)},
	}
}

func TestList_Ordering(t *testing.T) {
	b, api, _ := setupBrowser(t)
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return(listing(), nil).Once()

	nodes, err := b.List(context.Background(), "/photos/data")
	require.NoError(t, err)

	var got []string
	for i := range nodes {
		got = append(got, nodes[i].Name())
	}
	assert.Equal(t, []string{"recent-dir", "a-dir", "b-dir", "new.txt", "old.txt"}, got)
}

func TestModeAccepts(t *testing.T) {
	dataFile := &models.Node{Path: "/photos/data/a.txt", Kind: models.NodeFile}
	repoFile := &models.Node{Path: "/photos/repo/a.txt", Kind: models.NodeFile}
	dataDir := &models.Node{Path: "/photos/data/docs", Kind: models.NodeDirectory}
	repoDir := &models.Node{Path: "/photos/repo", Kind: models.NodeDirectory}

	tests := []struct {
		mode Mode
		node *models.Node
		want bool
	}{
		{AnyFile, dataFile, true},
		{AnyFile, repoFile, true},
		{AnyFile, dataDir, false},
		{AnyFolder, repoDir, true},
		{AnyFolder, repoFile, false},
		{WritableFile, dataFile, true},
		{WritableFile, repoFile, false},
		{WritableFolder, dataDir, true},
		{WritableFolder, repoDir, false},
		{Explore, dataFile, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+" "+tt.node.Path, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Accepts(tt.node))
		})
	}
}

func TestCanEdit(t *testing.T) {
	assert.True(t, CanEdit(&models.Node{Path: "/m/data/notes.md", Kind: models.NodeFile, Size: 100}))
	assert.True(t, CanEdit(&models.Node{Path: "/m/data/CONFIG.YAML", Kind: models.NodeFile}))
	assert.False(t, CanEdit(&models.Node{Path: "/m/data/photo.jpg", Kind: models.NodeFile}))
	assert.False(t, CanEdit(&models.Node{Path: "/m/data/big.log", Kind: models.NodeFile, Size: MaxEditSize}))
	assert.False(t, CanEdit(&models.Node{Path: "/m/repo/notes.md", Kind: models.NodeFile}))
	assert.False(t, CanEdit(&models.Node{Path: "/m/data/dir.txt", Kind: models.NodeDirectory}))
}

func TestDownload(t *testing.T) {
	b, api, local := setupBrowser(t)
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return(listing(), nil).Once()
	api.EXPECT().Dump(mock.Anything, "/photos/data/new.txt", int64(0), vfs.Unbounded).
		Return([]byte("twenty bytes of text"), nil).Once()

	n, err := b.Download(context.Background(), "/photos/data/new.txt", "/home/bob/out/new.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)

	data, err := afero.ReadFile(local, "/home/bob/out/new.txt")
	require.NoError(t, err)
	assert.Equal(t, "twenty bytes of text", string(data))
}

func TestDownload_Directory(t *testing.T) {
	b, api, _ := setupBrowser(t)
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return(listing(), nil).Once()

	_, err := b.Download(context.Background(), "/photos/data/a-dir", "/tmp/x")
	assert.True(t, errs.Is(err, errs.Conflict))
}

func TestEdit_UploadsChanges(t *testing.T) {
	editor := func(fs afero.Fs) EditorFunc {
		return func(_ context.Context, file string) error {
			return afero.WriteFile(fs, file, []byte("edited"), 0o600)
		}
	}

	api := mocks.NewMockFileAPI(t)
	v := vfs.New(api, vfs.Options{LookupTTL: time.Second, DumpTTL: time.Second, DumpMaxBytes: 1 << 20})
	local := afero.NewMemMapFs()
	b := New(v, local, WithEditor(editor(local)))

	api.EXPECT().Browse(mock.Anything, "/photos/data").Return(listing(), nil).Once()
	api.EXPECT().Dump(mock.Anything, "/photos/data/old.txt", int64(0), vfs.Unbounded).
		Return([]byte("original text"), nil).Once()
	api.EXPECT().WriteFile(mock.Anything, mock.MatchedBy(func(p models.FilePatch) bool {
		return p.Path == "/photos/data/old.txt" && string(p.Data) == "edited" &&
			*p.Offset == 0 && *p.TruncateTo == 6
	})).Return(nil).Once()

	changed, err := b.Edit(context.Background(), "/photos/data/old.txt")
	require.NoError(t, err)
	assert.True(t, changed)

	leftovers, err := afero.Glob(local, "/tmp/neptis-edit-*")
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temp file is removed")
}

func TestEdit_NoChange(t *testing.T) {
	b, api, _ := setupBrowser(t, WithEditor(func(context.Context, string) error { return nil }))
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return(listing(), nil).Once()
	api.EXPECT().Dump(mock.Anything, "/photos/data/old.txt", int64(0), vfs.Unbounded).
		Return([]byte("same"), nil).Once()

	changed, err := b.Edit(context.Background(), "/photos/data/old.txt")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRenameAndCreate(t *testing.T) {
	b, api, _ := setupBrowser(t)
	api.EXPECT().WriteFile(mock.Anything, mock.MatchedBy(func(p models.FilePatch) bool {
		return p.Path == "/photos/data/old.txt" && *p.NewPath == "/photos/data/new_name.txt"
	})).Return(nil).Once()
	api.EXPECT().CreateFile(mock.Anything, "/photos/data/fresh", true).Return(nil).Once()
	api.EXPECT().CreateFile(mock.Anything, "/photos/data/empty.txt", false).Return(nil).Once()

	ctx := context.Background()
	target, err := b.Rename(ctx, "/photos/data/old.txt", "new/name.txt")
	require.NoError(t, err)
	assert.Equal(t, "/photos/data/new_name.txt", target)

	p, err := b.CreateDir(ctx, "/photos/data", "fresh")
	require.NoError(t, err)
	assert.Equal(t, "/photos/data/fresh", p)

	_, err = b.CreateFile(ctx, "/photos/data", "empty.txt")
	require.NoError(t, err)
}

func TestEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", Editor())

	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, "code --wait", Editor())

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", Editor())
}

func TestRun_SelectWritableFolder(t *testing.T) {
	b, api, _ := setupBrowser(t)
	api.EXPECT().Browse(mock.Anything, "/").Return([]models.Node{
		{Path: "/photos", Kind: models.NodeDirectory},
	}, nil).Once()
	api.EXPECT().Browse(mock.Anything, "/photos").Return([]models.Node{
		{Path: "/photos/data", Kind: models.NodeDirectory},
		{Path: "/photos/repo", Kind: models.NodeDirectory},
	}, nil).Once()
	api.EXPECT().Browse(mock.Anything, "/photos/data").Return(listing(), nil).Once()

	in := strings.NewReader("cd photos\nselect repo\ncd data\nls\nselect a-dir\n")
	var out bytes.Buffer

	selected, err := b.Run(context.Background(), "/", WritableFolder, in, &out)
	require.NoError(t, err)
	assert.Equal(t, "/photos/data/a-dir", selected)
	assert.Contains(t, out.String(), "is not a writable folder")
	assert.Contains(t, out.String(), "recent-dir/")
}

func TestRun_QuitAborts(t *testing.T) {
	b, _, _ := setupBrowser(t)

	_, err := b.Run(context.Background(), "/", AnyFile, strings.NewReader("help\nq\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrAborted)

	_, err = b.Run(context.Background(), "/", AnyFile, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrAborted)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KiB", FormatSize(1536))
	assert.Equal(t, "5.0 MiB", FormatSize(5<<20))
	assert.Equal(t, "1.0 GiB", FormatSize(1<<30))
}
