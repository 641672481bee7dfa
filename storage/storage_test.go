package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadAndKeys(t *testing.T) {
	mem := NewMemoryStorage()
	mem.Put("logs/openings_2024.txt", []byte("mem 2024"))
	mem.Put("logs/openings_2025.txt", []byte("mem 2025"))
	mem.Put("other/readme.txt", []byte("not a log"))

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "other"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "openings_2024.txt"), []byte("disk 2024"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "openings_2025.txt"), []byte("disk 2025"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other", "readme.txt"), []byte("not a log"), 0644))

	tests := []struct {
		name    string
		storage System
		want    string
	}{
		{
			name:    "memory",
			storage: mem,
			want:    "mem 2024",
		},
		{
			name:    "disk",
			storage: NewDiskStorage(dir),
			want:    "disk 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.storage.Read(context.Background(), "logs/openings_2024.txt")
			require.NoError(t, err)
			require.Equal(t, tt.want, string(data))

			keys, err := tt.storage.Keys(context.Background(), "logs/")
			require.NoError(t, err)
			require.Len(t, keys, 2)
			require.ElementsMatch(t, []string{"logs/openings_2024.txt", "logs/openings_2025.txt"}, keys)

			_, err = tt.storage.Read(context.Background(), "logs/missing.txt")
			require.ErrorIs(t, err, ErrDoesNotExist)
		})
	}
}
