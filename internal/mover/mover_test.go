package mover

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptis/internal/config"
	"neptis/internal/errs"
	"neptis/internal/models"
)

func zipWith(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func archiveServer(t *testing.T, archive []byte) (*httptest.Server, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Contains(t, r.URL.Path, runtime.GOARCH)
		w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestInstall_DownloadsAndExtracts(t *testing.T) {
	archive := zipWith(t, map[string]string{
		"rclone-v1.70-linux-amd64/README.txt": "readme",
		"rclone-v1.70-linux-amd64/rclone":     "#!/bin/sh\n",
	})
	srv, hits := archiveServer(t, archive)

	fs := afero.NewMemMapFs()
	m := New(config.MoverConfig{
		DownloadURL: srv.URL + "/rclone-current-{os}-{arch}.zip",
		BinaryName:  "rclone",
		Freshness:   24 * time.Hour,
	}, "/work", fs)
	if runtime.GOOS == "windows" {
		t.Skip("binary name differs on windows")
	}

	bin, err := m.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/work/rclone", bin)

	data, err := afero.ReadFile(fs, bin)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	_, err = m.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "fresh binary is reused")
}

func TestInstall_RefreshesStaleBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("binary name differs on windows")
	}
	archive := zipWith(t, map[string]string{"rclone": "new"})
	srv, hits := archiveServer(t, archive)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/rclone", []byte("old"), 0o755))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, fs.Chtimes("/work/rclone", old, old))

	m := New(config.MoverConfig{
		DownloadURL: srv.URL + "/{os}-{arch}.zip",
		BinaryName:  "rclone",
		Freshness:   24 * time.Hour,
	}, "/work", fs)

	_, err := m.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	data, err := afero.ReadFile(fs, "/work/rclone")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestInstall_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "gone", http.StatusNotFound) }},
		{"not a zip", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("garbage")) }},
		{"missing binary", func(w http.ResponseWriter, r *http.Request) {
			w.Write(zipWith(t, map[string]string{"README": "x"}))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			m := New(config.MoverConfig{DownloadURL: srv.URL + "/x.zip", BinaryName: "rclone"}, "/work", afero.NewMemMapFs())
			_, err := m.Install(context.Background())
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ToolMissing))
		})
	}
}

func TestSyncArgs(t *testing.T) {
	transfers := 2
	m := New(config.MoverConfig{ExtraArgs: []string{"--fast-list"}}, "/work", afero.NewMemMapFs())

	args := m.SyncArgs(models.SyncRequest{
		LocalFolder:  "/home/bob/docs",
		RemoteFolder: "/bob-photos-data/docs",
		Options:      &models.MoverOptions{Transfers: &transfers},
	})

	assert.Equal(t, []string{
		"sync", "/home/bob/docs", "neptis:/bob-photos-data/docs",
		"--use-json-log", "--stats", "1s", "--log-level", "NOTICE", "--stats-log-level", "NOTICE",
		"--transfers", "2", "--checkers", "8",
		"--fast-list",
	}, args)
}

func TestCleanTemp(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/neptis-1.tmp", nil, 0o600))
	require.NoError(t, afero.WriteFile(fs, "/work/neptis-2.tmp", nil, 0o600))
	require.NoError(t, afero.WriteFile(fs, "/work/rclone", nil, 0o755))

	m := New(config.MoverConfig{}, "/work", fs)
	n, err := m.CleanTemp()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	exists, _ := afero.Exists(fs, "/work/rclone")
	assert.True(t, exists)
}

const fakeRclone = `#!/bin/sh
dir=$(dirname "$0")
case "$1" in
obscure)
  echo "obscured-$2"
  ;;
sync)
  cat "$RCLONE_CONFIG" > "$dir/seen-config"
  echo "$@" > "$dir/seen-args"
  echo "not json at all"
  echo '{"level":"notice","msg":"","source":"accounting/stats.go:1","stats":{"bytes":10,"totalBytes":20,"speed":5.5},"time":"2025-07-01T00:00:00Z"}'
  echo '{"level":"error","msg":"a.txt: permission denied","time":"2025-07-01T00:00:01Z"}' >&2
  if [ -n "$FAKE_SLEEP" ]; then exec sleep "$FAKE_SLEEP"; fi
  exit ${FAKE_EXIT:-0}
  ;;
esac
`

func setupFakeMover(t *testing.T) (*Mover, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script mover needs a unix shell")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rclone"), []byte(fakeRclone), 0o755))

	m := New(config.MoverConfig{BinaryName: "rclone", Freshness: time.Hour}, dir, afero.NewOsFs())
	return m, dir
}

func collect(t *testing.T, p interface {
	Events() <-chan models.MoverEvent
	Done() <-chan struct{}
}) []models.MoverEvent {
	t.Helper()
	var events []models.MoverEvent
	for ev := range p.Events() {
		events = append(events, ev)
	}
	select {
	case <-p.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("mover did not exit")
	}
	return events
}

func TestSync_StreamsEvents(t *testing.T) {
	m, dir := setupFakeMover(t)

	p, err := m.Sync(context.Background(), models.SyncRequest{
		JobID:         "job-1",
		LocalFolder:   "/home/bob/docs",
		RemoteFolder:  "/bob-photos-data/docs",
		Host:          "nas.local",
		ShareUser:     "bob",
		SharePassword: "hunter2",
	})
	require.NoError(t, err)

	events := collect(t, p)
	require.NoError(t, p.Err())
	require.Len(t, events, 2)

	var stats, errors int
	for _, ev := range events {
		if ev.IsStats() {
			stats++
			assert.Equal(t, int64(10), ev.Stats.Bytes)
			assert.Equal(t, int64(20), ev.Stats.TotalBytes)
		}
		if ev.IsError() {
			errors++
			assert.Contains(t, ev.Msg, "permission denied")
		}
	}
	assert.Equal(t, 1, stats)
	assert.Equal(t, 1, errors)

	seen, err := os.ReadFile(filepath.Join(dir, "seen-config"))
	require.NoError(t, err)
	assert.Equal(t, "[neptis]\ntype = smb\nhost = nas.local\nuser = bob\npass = obscured-hunter2\n", string(seen))

	args, err := os.ReadFile(filepath.Join(dir, "seen-args"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(args), "sync /home/bob/docs neptis:/bob-photos-data/docs --use-json-log"))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "config file is removed after exit")
}

func TestSync_ExitError(t *testing.T) {
	m, _ := setupFakeMover(t)
	t.Setenv("FAKE_EXIT", "3")

	p, err := m.Sync(context.Background(), models.SyncRequest{JobID: "job-2", LocalFolder: "/src", RemoteFolder: "/bob-m-data", ShareUser: "bob"})
	require.NoError(t, err)

	collect(t, p)
	require.Error(t, p.Err())
	assert.True(t, errs.Is(p.Err(), errs.ToolFailed))
}

func TestSync_Kill(t *testing.T) {
	m, _ := setupFakeMover(t)
	t.Setenv("FAKE_SLEEP", "30")

	p, err := m.Sync(context.Background(), models.SyncRequest{JobID: "job-3", LocalFolder: "/src", RemoteFolder: "/bob-m-data", ShareUser: "bob"})
	require.NoError(t, err)

	// wait for the stats line so the script has reached its sleep
	ev, ok := <-p.Events()
	require.True(t, ok)
	assert.True(t, ev.IsStats())

	require.NoError(t, p.Kill())
	select {
	case <-p.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("mover still running after kill")
	}
	assert.Error(t, p.Err())
	assert.NoError(t, p.Kill(), "killing an exited process is a no-op")
}

func TestObscure(t *testing.T) {
	m, _ := setupFakeMover(t)

	out, err := m.Obscure(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, "obscured-secret", out)
}
