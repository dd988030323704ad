package cleanblog

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test_posts.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePost(title string) PostFields {
	return PostFields{
		Title:    title,
		Subtitle: "A subtitle",
		Author:   "Ada",
		ImgURL:   "https://example.com/x.png",
		Body:     "<p>Some <em>rich</em> text.</p>",
	}
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)

	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestCreateAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	fields := samplePost("Test Post")
	created, err := s.CreatePost(fields, "April 05, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}

	got, err := s.GetPost(created.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if fieldsOf(got) != fields {
		t.Errorf("fields = %+v, want %+v", fieldsOf(got), fields)
	}
	if got.Date != "April 05, 2024" {
		t.Errorf("Date = %q, want %q", got.Date, "April 05, 2024")
	}
	if got.Link != "/post/1" {
		t.Errorf("Link = %q, want %q", got.Link, "/post/1")
	}
	if got != created {
		t.Errorf("GetPost = %+v, want the created post %+v", got, created)
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(samplePost("Same"), "April 05, 2024"); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	other := samplePost("Same")
	other.Body = "different body"
	_, err := s.CreatePost(other, "April 06, 2024")
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("second CreatePost err = %v, want ErrDuplicateTitle", err)
	}

	got, err := s.GetPost(1)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Body != samplePost("Same").Body {
		t.Errorf("original post was overwritten: body = %q", got.Body)
	}
	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("ListPosts count = %d, want 1", len(posts))
	}
}

func TestUpdatePostKeepsIDAndDate(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(samplePost("Original Title"), "January 01, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated := PostFields{
		Title:    "Updated Title",
		Subtitle: "Updated subtitle",
		Author:   "Grace",
		ImgURL:   "https://example.com/y.png",
		Body:     "new body",
	}
	if err := s.UpdatePost(created.ID, updated); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	got, err := s.GetPost(created.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
	if got.Date != "January 01, 2024" {
		t.Errorf("Date = %q, want it unchanged", got.Date)
	}
	if fieldsOf(got) != updated {
		t.Errorf("fields = %+v, want %+v", fieldsOf(got), updated)
	}
}

func TestUpdatePostSameTitle(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(samplePost("Keep"), "January 01, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	f := samplePost("Keep")
	f.Subtitle = "new subtitle"
	if err := s.UpdatePost(created.ID, f); err != nil {
		t.Errorf("UpdatePost with own title failed: %v", err)
	}
}

func TestUpdatePostDuplicateTitle(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(samplePost("First"), "January 01, 2024"); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	second, err := s.CreatePost(samplePost("Second"), "January 02, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if err := s.UpdatePost(second.ID, samplePost("First")); !errors.Is(err, ErrDuplicateTitle) {
		t.Errorf("UpdatePost err = %v, want ErrDuplicateTitle", err)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if err := s.UpdatePost(42, samplePost("Ghost")); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePost err = %v, want ErrNotFound", err)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPost(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPostsInsertionOrder(t *testing.T) {
	s := setupTestStore(t)

	titles := []string{"Post 1", "Post 2", "Post 3"}
	for _, title := range titles {
		if _, err := s.CreatePost(samplePost(title), "January 01, 2024"); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}

	got, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != len(titles) {
		t.Fatalf("ListPosts count = %d, want %d", len(got), len(titles))
	}
	for i, title := range titles {
		if got[i].Title != title {
			t.Errorf("ListPosts[%d].Title = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestListPostsEmpty(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListPosts count = %d, want 0", len(got))
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	keep, err := s.CreatePost(samplePost("Keep"), "January 01, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	gone, err := s.CreatePost(samplePost("To Delete"), "January 01, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := s.DeletePost(gone.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if _, err := s.GetPost(gone.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Post should not exist after delete, got err: %v", err)
	}
	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != keep.ID {
		t.Errorf("ListPosts after delete = %+v, want only post %d", posts, keep.ID)
	}
}

func TestDeleteNonexistentPost(t *testing.T) {
	s := setupTestStore(t)

	if err := s.DeletePost(5); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeletePost on nonexistent err = %v, want ErrNotFound", err)
	}
}

func TestIDsAreNotReused(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.CreatePost(samplePost("One"), "January 01, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if err := s.DeletePost(first.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	second, err := s.CreatePost(samplePost("Two"), "January 01, 2024")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("id %d was reused after delete", first.ID)
	}
}

func TestStoreReopenKeepsPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if _, err := s.CreatePost(samplePost("Durable"), "January 01, 2024"); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	s.Close()

	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	got, err := s.GetPost(1)
	if err != nil {
		t.Fatalf("GetPost after reopen failed: %v", err)
	}
	if got.Title != "Durable" {
		t.Errorf("Title = %q, want %q", got.Title, "Durable")
	}
}

func TestParsePostID(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		got, err := ParsePostID(tt.input)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParsePostID(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrNotFound) {
			t.Errorf("ParsePostID(%q) err = %v, want ErrNotFound", tt.input, err)
		}
	}
}
