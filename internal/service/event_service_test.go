package service

import (
	"testing"
	"time"

	"campusclubs/internal/db"
	"campusclubs/internal/repository"
)

func comment(uid string, parentUID *string, content string, minute int) repository.CommentWithAuthor {
	return repository.CommentWithAuthor{
		Comment: db.Comment{
			UID:       uid,
			EventUID:  "ev-1",
			UserUID:   "user-1",
			ParentUID: parentUID,
			Content:   content,
			CreatedAt: time.Date(2026, 3, 2, 12, minute, 0, 0, time.UTC),
		},
		UserName: "Dana",
	}
}

func strPtr(s string) *string { return &s }

func TestThreadCommentsNestsRepliesOfReplies(t *testing.T) {
	comments := []repository.CommentWithAuthor{
		comment("a", nil, "top", 0),
		comment("b", strPtr("a"), "reply", 1),
		comment("c", strPtr("b"), "reply to reply", 2),
	}

	got := threadComments(comments)

	if len(got) != 1 {
		t.Fatalf("top-level comments = %d, want 1", len(got))
	}
	top := got[0]
	if top.UID != "a" || len(top.Replies) != 1 {
		t.Fatalf("top = %q with %d replies, want %q with 1", top.UID, len(top.Replies), "a")
	}
	reply := top.Replies[0]
	if reply.UID != "b" || len(reply.Replies) != 1 {
		t.Fatalf("reply = %q with %d replies, want %q with 1", reply.UID, len(reply.Replies), "b")
	}
	if nested := reply.Replies[0]; nested.UID != "c" || nested.Content != "reply to reply" {
		t.Errorf("nested reply = %q (%q), want %q", nested.UID, nested.Content, "c")
	}
}

func TestThreadCommentsOrderAndSiblings(t *testing.T) {
	comments := []repository.CommentWithAuthor{
		comment("a", nil, "first", 0),
		comment("b", nil, "second", 1),
		comment("c", strPtr("a"), "older reply", 2),
		comment("d", strPtr("a"), "newer reply", 3),
	}

	got := threadComments(comments)

	if len(got) != 2 {
		t.Fatalf("top-level comments = %d, want 2", len(got))
	}
	if got[0].UID != "a" || got[1].UID != "b" {
		t.Errorf("top-level order = [%q %q], want [a b]", got[0].UID, got[1].UID)
	}
	if len(got[0].Replies) != 2 {
		t.Fatalf("replies under a = %d, want 2", len(got[0].Replies))
	}
	if got[0].Replies[0].UID != "c" || got[0].Replies[1].UID != "d" {
		t.Errorf("reply order = [%q %q], want [c d]", got[0].Replies[0].UID, got[0].Replies[1].UID)
	}
	if len(got[1].Replies) != 0 {
		t.Errorf("replies under b = %d, want 0", len(got[1].Replies))
	}
}

func TestThreadCommentsSkipsUnknownParent(t *testing.T) {
	comments := []repository.CommentWithAuthor{
		comment("a", nil, "top", 0),
		comment("b", strPtr("gone"), "orphan", 1),
	}

	got := threadComments(comments)

	if len(got) != 1 || got[0].UID != "a" {
		t.Fatalf("top-level = %v, want only %q", got, "a")
	}
	if len(got[0].Replies) != 0 {
		t.Errorf("replies = %d, want 0", len(got[0].Replies))
	}
}

func TestThreadCommentsEmpty(t *testing.T) {
	got := threadComments(nil)
	if len(got) != 0 {
		t.Fatalf("threaded comments = %d, want 0", len(got))
	}
}
