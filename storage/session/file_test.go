package sessionstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FileStorage_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := OpenFile(path)
	assert.NoError(t, s.Set("accessToken", "tok-1"))
	assert.NoError(t, s.Set("userInfo", `{"id":1}`))

	// a fresh open sees what the last process wrote
	s2 := OpenFile(path)
	v, ok := s2.Get("accessToken")
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	assert.NoError(t, s2.Delete("accessToken", "userInfo"))
	_, ok = OpenFile(path).Get("accessToken")
	assert.False(t, ok)
}

func Test_FileStorage_missingFile(t *testing.T) {
	s := OpenFile(filepath.Join(t.TempDir(), "nope.json"))
	_, ok := s.Get("accessToken")
	assert.False(t, ok)
}

func Test_FileStorage_corruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := OpenFile(path)
	_, ok := s.Get("accessToken")
	assert.False(t, ok, "a corrupted file reads back as no session")

	// and it heals on the next write
	assert.NoError(t, s.Set("accessToken", "tok-1"))
	v, ok := OpenFile(path).Get("accessToken")
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)
}

func Test_FileStorage_permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := OpenFile(path)
	assert.NoError(t, s.Set("accessToken", "tok-1"))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func Test_MemStorage(t *testing.T) {
	s := OpenMem()
	assert.NoError(t, s.Set("k", "v"))
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.NoError(t, s.Delete("k"))
	_, ok = s.Get("k")
	assert.False(t, ok)
}
