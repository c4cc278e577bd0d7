// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"quillbox-server/db"
	"quillbox-server/models"
	"quillbox-server/stores"
	"strings"
	"testing"
)

func TestHomePageListsPosts(t *testing.T) {
	e := newTestApp(t)
	user := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	posts := stores.NewPostStore(db.Conn)
	for i := 1; i <= 3; i++ {
		if _, err := posts.Create(user.ID, fmt.Sprintf("Field Notes %d", i), "Observations."); err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	rec := doGET(e, "/")
	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	for i := 1; i <= 3; i++ {
		if !strings.Contains(body, fmt.Sprintf("Field Notes %d", i)) {
			t.Fatalf("expected post %d on the home page", i)
		}
	}
	if !strings.Contains(body, "corvus") {
		t.Fatal("expected the author name on the home page")
	}
}

func TestCreatePostRequiresLogin(t *testing.T) {
	e := newTestApp(t)

	rec := doPOST(e, "/post/new", url.Values{
		"title":   {"Drive-by"},
		"content": {"Should not land."},
	})
	assertStatus(t, rec, http.StatusFound)

	var count int64
	db.Conn.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Fatalf("anonymous post creation must not persist, found %d posts", count)
	}
}

func TestCreatePost(t *testing.T) {
	e := newTestApp(t)
	user := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	cookie := sessionCookie(t, user)

	rec := doPOST(e, "/post/new", url.Values{
		"title":   {"First Post"},
		"content": {"Hello from the rookery."},
	}, cookie)
	assertRedirect(t, rec, http.StatusSeeOther, "/")

	var post models.Post
	if err := db.Conn.First(&post).Error; err != nil {
		t.Fatalf("expected the post persisted: %v", err)
	}
	if post.AuthorID != user.ID {
		t.Fatalf("post attributed to user %d, want %d", post.AuthorID, user.ID)
	}
}

func TestCreatePostValidation(t *testing.T) {
	e := newTestApp(t)
	user := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	cookie := sessionCookie(t, user)

	rec := doPOST(e, "/post/new", url.Values{
		"title":   {"   "},
		"content": {"Body without a title."},
	}, cookie)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Title is required.") {
		t.Fatal("expected title validation message")
	}
}

func TestPostPageShowsPost(t *testing.T) {
	e := newTestApp(t)
	user := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	post, err := stores.NewPostStore(db.Conn).Create(user.ID, "Nesting Season", "It begins.")
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	rec := doGET(e, fmt.Sprintf("/post/%d", post.ID))
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Nesting Season") {
		t.Fatal("expected the post title on the page")
	}
}

func TestPostPageNotFound(t *testing.T) {
	e := newTestApp(t)

	for _, target := range []string{"/post/9999", "/post/not-a-number"} {
		rec := doGET(e, target)
		assertStatus(t, rec, http.StatusNotFound)
	}
}

func TestUpdatePostByNonAuthorForbidden(t *testing.T) {
	e := newTestApp(t)
	author := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	intruder := registerUser(t, "pica", "pica@example.com", "magpie pass")
	post, err := stores.NewPostStore(db.Conn).Create(author.ID, "Mine", "Hands off.")
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	cookie := sessionCookie(t, intruder)

	rec := doPOST(e, fmt.Sprintf("/post/%d/update", post.ID), url.Values{
		"title":   {"Stolen"},
		"content": {"Rewritten."},
	}, cookie)
	assertStatus(t, rec, http.StatusForbidden)

	reloaded, err := stores.NewPostStore(db.Conn).Get(post.ID)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if reloaded.Title != "Mine" {
		t.Fatalf("post should be untouched, got title %q", reloaded.Title)
	}

	rec = doPOST(e, fmt.Sprintf("/post/%d/delete", post.ID), url.Values{}, cookie)
	assertStatus(t, rec, http.StatusForbidden)
}

func TestUpdatePostByAuthor(t *testing.T) {
	e := newTestApp(t)
	author := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	post, err := stores.NewPostStore(db.Conn).Create(author.ID, "Draft", "Rough notes.")
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	cookie := sessionCookie(t, author)

	rec := doPOST(e, fmt.Sprintf("/post/%d/update", post.ID), url.Values{
		"title":   {"Final"},
		"content": {"Polished notes."},
	}, cookie)
	assertRedirect(t, rec, http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))

	reloaded, err := stores.NewPostStore(db.Conn).Get(post.ID)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if reloaded.Title != "Final" || reloaded.Content != "Polished notes." {
		t.Fatalf("post not updated: %+v", reloaded)
	}
}

func TestDeletePostByAuthor(t *testing.T) {
	e := newTestApp(t)
	author := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	post, err := stores.NewPostStore(db.Conn).Create(author.ID, "Ephemeral", "Gone soon.")
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	cookie := sessionCookie(t, author)

	rec := doPOST(e, fmt.Sprintf("/post/%d/delete", post.ID), url.Values{}, cookie)
	assertRedirect(t, rec, http.StatusSeeOther, "/")

	var count int64
	db.Conn.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected post deleted, found %d", count)
	}
}

func TestUserPostsPage(t *testing.T) {
	e := newTestApp(t)
	corvus := registerUser(t, "corvus", "corvus@example.com", "raven pass")
	pica := registerUser(t, "pica", "pica@example.com", "magpie pass")
	posts := stores.NewPostStore(db.Conn)
	if _, err := posts.Create(corvus.ID, "Raven Post", "Mine."); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	if _, err := posts.Create(pica.ID, "Magpie Post", "Also fine."); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	rec := doGET(e, "/user/corvus")
	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "Raven Post") {
		t.Fatal("expected the author's post on their page")
	}
	if strings.Contains(body, "Magpie Post") {
		t.Fatal("another author's post must not appear")
	}
}

func TestUserPostsUnknownUser(t *testing.T) {
	e := newTestApp(t)
	rec := doGET(e, "/user/nobody")
	assertStatus(t, rec, http.StatusNotFound)
}
