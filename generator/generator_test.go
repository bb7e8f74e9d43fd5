package generator

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dendrascience/filesinfo/manifest"
	"github.com/dendrascience/filesinfo/registry"
	"github.com/dendrascience/filesinfo/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

type fixture struct {
	base     string
	registry string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "projects")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "A"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "B"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "A", "x.txt"), []byte("hello"), 0o644))
	return fixture{base: base, registry: filepath.Join(dir, "project_data.json")}
}

func (f fixture) generator() *Generator {
	return New(Config{BasePath: f.base, RegistryPath: f.registry})
}

func readRegistry(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}

func values(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func TestRun(t *testing.T) {
	f := newFixture(t)

	res, err := f.generator().Run()
	require.NoError(t, err)

	a, err := manifest.Load(filepath.Join(f.base, "A", manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "A", a.Version)
	require.Len(t, a.Files, 1)
	assert.Equal(t, helloSHA256, a.Files["x.txt"].Checksum)

	b, err := manifest.Load(filepath.Join(f.base, "B", manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "B", b.Version)
	assert.Empty(t, b.Files)

	reg := readRegistry(t, f.registry)
	assert.Equal(t, []string{"A", "B"}, values(reg))
	assert.Len(t, res.Added, 2)
	assert.Equal(t, 1, res.Files)
	assert.ElementsMatch(t, []string{"A", "B"}, res.Projects)
}

func TestRun_Idempotent(t *testing.T) {
	f := newFixture(t)

	_, err := f.generator().Run()
	require.NoError(t, err)
	first := readRegistry(t, f.registry)

	res, err := f.generator().Run()
	require.NoError(t, err)
	second := readRegistry(t, f.registry)

	assert.Equal(t, first, second)
	assert.Empty(t, res.Added)

	a, err := manifest.Load(filepath.Join(f.base, "A"))
	require.NoError(t, err)
	assert.NotContains(t, a.Files, manifest.FileName)
	assert.Len(t, a.Files, 1)
}

func TestRun_KeepsExistingEntries(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.registry, []byte(`{"id1": "A"}`), 0o644))

	res, err := f.generator().Run()
	require.NoError(t, err)

	reg := readRegistry(t, f.registry)
	assert.Len(t, reg, 2)
	assert.Equal(t, "A", reg["id1"])
	assert.Equal(t, []string{"A", "B"}, values(reg))
	require.Len(t, res.Added, 1)
	assert.Equal(t, []string{"B"}, values(res.Added))
}

func TestRun_IgnoresPlainFilesInBase(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.base, "README.txt"), []byte("notes"), 0o644))

	_, err := f.generator().Run()
	require.NoError(t, err)

	reg := readRegistry(t, f.registry)
	assert.Equal(t, []string{"A", "B"}, values(reg))
	_, err = os.Stat(filepath.Join(f.base, manifest.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_BasePathNotFound(t *testing.T) {
	dir := t.TempDir()
	g := New(Config{
		BasePath:     filepath.Join(dir, "missing"),
		RegistryPath: filepath.Join(dir, "project_data.json"),
	})

	_, err := g.Run()
	assert.True(t, errors.Is(err, ErrBasePathNotFound))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, statErr := os.Stat(filepath.Join(dir, "project_data.json"))
	assert.True(t, os.IsNotExist(statErr), "registry must not be written")
}

func TestRun_CorruptRegistryAbortsBeforeProcessing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.registry, []byte(`{not json`), 0o644))

	_, err := f.generator().Run()
	assert.True(t, errors.Is(err, registry.ErrCorruptRegistry))

	_, statErr := os.Stat(filepath.Join(f.base, "A", manifest.FileName))
	assert.True(t, os.IsNotExist(statErr), "no manifest should be written")

	data, readErr := os.ReadFile(f.registry)
	require.NoError(t, readErr)
	assert.Equal(t, `{not json`, string(data))
}

func TestRun_UnreadableFileIsOmitted(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	f := newFixture(t)
	locked := filepath.Join(f.base, "A", "locked.txt")
	require.NoError(t, os.WriteFile(locked, []byte("secret"), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o644) })

	_, err := f.generator().Run()
	require.NoError(t, err)

	a, err := manifest.Load(filepath.Join(f.base, "A"))
	require.NoError(t, err)
	assert.Contains(t, a.Files, "x.txt")
	assert.NotContains(t, a.Files, "locked.txt")

	b, err := manifest.Load(filepath.Join(f.base, "B"))
	require.NoError(t, err)
	assert.Equal(t, "B", b.Version)
	assert.Equal(t, []string{"A", "B"}, values(readRegistry(t, f.registry)))
}

func TestRun_UnreadableDirectoryIsFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	f := newFixture(t)
	locked := filepath.Join(f.base, "A", "private")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, err := f.generator().Run()
	assert.Error(t, err)

	_, statErr := os.Stat(f.registry)
	assert.True(t, os.IsNotExist(statErr), "registry must not be written after a fatal error")
}

func TestRun_RegistryWriteFailure(t *testing.T) {
	f := newFixture(t)
	g := New(Config{BasePath: f.base, RegistryPath: filepath.Join(f.base, "nope", "project_data.json")})

	_, err := g.Run()
	assert.Error(t, err)
}

func TestRun_HashFailureIsOmitted(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.base, "A", "broken.txt"), []byte("secret"), 0o644))

	g := f.generator()
	g.builder.Hash = func(path string) (string, error) {
		if filepath.Base(path) == "broken.txt" {
			return "", os.ErrPermission
		}
		return util.GetFileHash(path)
	}

	res, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)

	a, err := manifest.Load(filepath.Join(f.base, "A"))
	require.NoError(t, err)
	assert.Contains(t, a.Files, "x.txt")
	assert.NotContains(t, a.Files, "broken.txt")

	b, err := manifest.Load(filepath.Join(f.base, "B"))
	require.NoError(t, err)
	assert.Equal(t, "B", b.Version)
	assert.Equal(t, []string{"A", "B"}, values(readRegistry(t, f.registry)))
}

func TestRun_InvalidUTF8ProjectNames(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "projects")
	require.NoError(t, os.Mkdir(base, 0o755))
	for _, name := range []string{"proj\xff", "proj\xff\xfe"} {
		if err := os.Mkdir(filepath.Join(base, name), 0o755); err != nil {
			t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
		}
	}
	g := New(Config{BasePath: base, RegistryPath: filepath.Join(dir, "project_data.json")})

	for run := 1; run <= 3; run++ {
		res, err := g.Run()
		require.NoError(t, err)
		if run == 1 {
			assert.Len(t, res.Added, 2)
		} else {
			assert.Empty(t, res.Added, "run %d", run)
		}
		reg := readRegistry(t, g.Config().RegistryPath)
		assert.Equal(t, []string{"proj�", "proj��"}, values(reg), "run %d", run)
	}
}
