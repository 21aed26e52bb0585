package ingest_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtdc/tdcstream/internal/ingest"
	"github.com/labtdc/tdcstream/internal/tdcerr"
)

func writeFixture(t *testing.T, records [][2]uint64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.bin")

	buf := make([]byte, 40+len(records)*10)
	for i, rec := range records {
		offset := 40 + i*10
		binary.LittleEndian.PutUint64(buf[offset:], rec[0])
		binary.LittleEndian.PutUint16(buf[offset+8:], uint16(rec[1])) //nolint:gosec // test fixture, small values
	}

	require.NoError(t, os.WriteFile(path, buf, 0o600))

	return path
}

func TestLoadRoundTrips(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{100, 0}, {110, 1}, {1000, 2}})

	timestamps, channels, err := ingest.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []uint64{100, 110, 1000}, timestamps)
	assert.Equal(t, []uint16{0, 1, 2}, channels)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	timestamps, channels, err := ingest.Load(path)
	require.NoError(t, err)
	assert.Empty(t, timestamps)
	assert.Empty(t, channels)
}

func TestLoadHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header-only.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 40), 0o600))

	timestamps, channels, err := ingest.Load(path)
	require.NoError(t, err)
	assert.Empty(t, timestamps)
	assert.Empty(t, channels)
}

func TestLoadTooShortForOneRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 45), 0o600))

	_, _, err := ingest.Load(path)
	require.ErrorIs(t, err, tdcerr.ErrFormat)
}

func TestLoadExactlyOneRecordWorthOfBytesIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 50), 0o600))

	timestamps, channels, err := ingest.Load(path)
	require.NoError(t, err)
	assert.Empty(t, timestamps)
	assert.Empty(t, channels)
}

func TestLoadIgnoresTrailingPartialRecord(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{100, 0}})

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = file.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	timestamps, channels, err := ingest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []uint64{100}, timestamps)
	assert.Equal(t, []uint16{0}, channels)
}
