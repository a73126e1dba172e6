package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyDate(t *testing.T) {
	d, ok := keyDate("analytics:click:github:2025-08-31")
	require.True(t, ok)
	require.Equal(t, "2025-08-31", d)

	_, ok = keyDate("analytics:click:github")
	require.False(t, ok)

	_, ok = keyDate("no-colons-at-all")
	require.False(t, ok)
}

func TestMemoryStoreMarkOnce(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	marked, err := s.MarkOnce("analytics:pageView:home:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.True(t, marked)

	marked, err = s.MarkOnce("analytics:pageView:home:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.False(t, marked)

	marked, err = s.MarkOnce("analytics:pageView:home:2025-09-01", time.Hour)
	require.NoError(t, err)
	require.True(t, marked)
}

func TestMemoryStoreDeleteOlderThan(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	for _, key := range []string{
		"analytics:click:github:2025-08-20",
		"analytics:click:github:2025-08-30",
		"analytics:click:github:2025-08-31",
	} {
		_, err := s.MarkOnce(key, time.Hour)
		require.NoError(t, err)
	}

	n, err := s.DeleteOlderThan("2025-08-31")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Deleted flags can be marked again; the survivor cannot.
	marked, err := s.MarkOnce("analytics:click:github:2025-08-20", time.Hour)
	require.NoError(t, err)
	require.True(t, marked)

	marked, err = s.MarkOnce("analytics:click:github:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.False(t, marked)
}

func TestBadgerStoreMarkOnce(t *testing.T) {
	s, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	marked, err := s.MarkOnce("analytics:sectionView:about:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.True(t, marked)

	marked, err = s.MarkOnce("analytics:sectionView:about:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.False(t, marked)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBadgerStore(dir)
	require.NoError(t, err)
	_, err = s.MarkOnce("analytics:pageView:home:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewBadgerStore(dir)
	require.NoError(t, err)
	defer s.Close()

	marked, err := s.MarkOnce("analytics:pageView:home:2025-08-31", time.Hour)
	require.NoError(t, err)
	require.False(t, marked)
}

func TestBadgerStoreDeleteOlderThan(t *testing.T) {
	s, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	for _, key := range []string{
		"analytics:click:github:2025-08-01",
		"analytics:click:github:2025-08-31",
	} {
		_, err := s.MarkOnce(key, time.Hour)
		require.NoError(t, err)
	}

	n, err := s.DeleteOlderThan("2025-08-24")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	marked, err := s.MarkOnce("analytics:click:github:2025-08-01", time.Hour)
	require.NoError(t, err)
	require.True(t, marked)
}
