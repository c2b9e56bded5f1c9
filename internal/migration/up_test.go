package migration

import (
	"testing"
	"testing/fstest"
)

func TestPreviousVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/000001_create_videos_table.up.sql":             {Data: []byte("")},
		"migrations/000001_create_videos_table.down.sql":           {Data: []byte("")},
		"migrations/000002_index_explicit_content_detected.up.sql": {Data: []byte("")},
		"migrations/000005_later.up.sql":                           {Data: []byte("")},
		"migrations/README.md":                                     {Data: []byte("")},
	}

	tests := []struct {
		dirty   int
		want    int
		wantErr bool
	}{
		{dirty: 1, want: nilVersion},
		{dirty: 2, want: 1},
		{dirty: 5, want: 2},
		{dirty: 3, wantErr: true},
	}
	for _, tc := range tests {
		got, err := previousVersion(fsys, tc.dirty)
		if tc.wantErr {
			if err == nil {
				t.Errorf("dirty=%d: expected error", tc.dirty)
			}
			continue
		}
		if err != nil {
			t.Fatalf("dirty=%d: unexpected error: %v", tc.dirty, err)
		}
		if got != tc.want {
			t.Errorf("dirty=%d: got %d; want %d", tc.dirty, got, tc.want)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := previousVersion(migrationsFS, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("got %d; want 1", got)
	}
}
