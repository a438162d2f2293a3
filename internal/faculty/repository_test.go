package faculty

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"campus-core/internal/infrastructure/database"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	p := database.NewProvider(database.Config{
		Path:        filepath.Join(t.TempDir(), "campus.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}, nil)
	t.Cleanup(func() {
		p.Close() //nolint:errcheck // Test cleanup
	})

	return NewSQLiteRepository(p)
}

func strPtr(s string) *string { return &s }

func seedFaculty(t *testing.T, repo *SQLiteRepository, f *Faculty) *Faculty {
	t.Helper()

	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("seeding faculty %s: %v", f.Code, err)
	}
	return f
}

func TestCreate(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	f := &Faculty{
		Code:        "ENG",
		Name:        "Engineering",
		Description: strPtr("Applied sciences and technology"),
	}

	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID == 0 {
		t.Error("Create did not assign an ID")
	}

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Code != "ENG" {
		t.Errorf("Code = %q, want %q", got.Code, "ENG")
	}
	if got.Name != "Engineering" {
		t.Errorf("Name = %q, want %q", got.Name, "Engineering")
	}
	if got.Description == nil || *got.Description != "Applied sciences and technology" {
		t.Errorf("Description = %v", got.Description)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want engine-assigned timestamp")
	}
}

func TestCreate_NilDescription(t *testing.T) {
	repo := testRepo(t)

	f := seedFaculty(t, repo, &Faculty{Code: "SCI", Name: "Science"})

	got, err := repo.GetByID(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != nil {
		t.Errorf("Description = %v, want nil", got.Description)
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	seedFaculty(t, repo, &Faculty{Code: "HUM", Name: "Humanities"})

	err := repo.Create(ctx, &Faculty{Code: "HUM", Name: "Other"})
	if !errors.Is(err, ErrCodeExists) {
		t.Errorf("Create duplicate = %v, want ErrCodeExists", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID missing = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	faculties, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if faculties == nil {
		t.Error("List returned nil, want empty slice")
	}

	seedFaculty(t, repo, &Faculty{Code: "S", Name: "Science"})
	seedFaculty(t, repo, &Faculty{Code: "E", Name: "Engineering"})
	seedFaculty(t, repo, &Faculty{Code: "H", Name: "Humanities"})

	faculties, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(faculties) != 3 {
		t.Fatalf("expected 3 faculties, got %d", len(faculties))
	}

	wantOrder := []string{"Engineering", "Humanities", "Science"}
	for i, want := range wantOrder {
		if faculties[i].Name != want {
			t.Errorf("faculties[%d].Name = %q, want %q", i, faculties[i].Name, want)
		}
	}
}

func TestUpdate(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	f := seedFaculty(t, repo, &Faculty{Code: "MED", Name: "Medicine", Description: strPtr("Old")})

	f.Code = "MED2"
	f.Name = "Medical Sciences"
	f.Description = nil

	if err := repo.Update(ctx, f); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Code != "MED2" || got.Name != "Medical Sciences" {
		t.Errorf("updated faculty = %+v", got)
	}
	if got.Description != nil {
		t.Errorf("Description = %v, want nil after clearing", got.Description)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := testRepo(t)

	err := repo.Update(context.Background(), &Faculty{ID: 9999, Code: "X", Name: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestUpdate_DuplicateCode(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	seedFaculty(t, repo, &Faculty{Code: "TAKEN", Name: "Holder"})
	f := seedFaculty(t, repo, &Faculty{Code: "MINE", Name: "Mover"})

	f.Code = "TAKEN"
	if err := repo.Update(ctx, f); !errors.Is(err, ErrCodeExists) {
		t.Errorf("Update to taken code = %v, want ErrCodeExists", err)
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	f := seedFaculty(t, repo, &Faculty{Code: "DEL", Name: "Doomed"})

	if err := repo.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	seedFaculty(t, repo, &Faculty{Code: "ENG", Name: "Engineering", Description: strPtr("Buildings and machines")})
	seedFaculty(t, repo, &Faculty{Code: "SCI", Name: "Science"})
	seedFaculty(t, repo, &Faculty{Code: "HUM", Name: "Humanities", Description: strPtr("Arts and letters")})

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"by name", "Engineer", []string{"Engineering"}},
		{"case insensitive", "engineer", []string{"Engineering"}},
		{"by code", "SCI", []string{"Science"}},
		{"by description", "letters", []string{"Humanities"}},
		{"multiple matches ordered by name", "i", []string{"Engineering", "Humanities", "Science"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.keyword)
			if err != nil {
				t.Fatalf("Search(%q): %v", tt.keyword, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d faculties, want %d", tt.keyword, len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].Name != want {
					t.Errorf("Search(%q)[%d].Name = %q, want %q", tt.keyword, i, got[i].Name, want)
				}
			}
		})
	}
}
