package access

import (
	"context"
	"fmt"
	"net/url"

	"yatube/app/apperrors"
)

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type contextKey struct{}

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// FromContext returns the actor stored in ctx, or nil for anonymous requests.
func FromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(contextKey{}).(*Actor)
	return actor
}

// IsAnonymous reports whether actor is unauthenticated.
func (a *Actor) IsAnonymous() bool {
	return a == nil || a.ID == 0
}

// Outcome is the result of a guarded operation. A refused operation is not an
// error: it names the view the actor should be sent to and why.
type Outcome struct {
	Allowed  bool
	Redirect string
	Reason   error
}

// Allow is the outcome of a permitted operation that continues to next.
func Allow(next string) Outcome {
	return Outcome{Allowed: true, Redirect: next}
}

// Guard performs authentication and authorship checks.
type Guard struct {
	loginURL string
}

// NewGuard creates a guard redirecting anonymous actors to loginURL.
func NewGuard(loginURL string) *Guard {
	if loginURL == "" {
		loginURL = LoginURL
	}
	return &Guard{loginURL: loginURL}
}

// RequireLogin refuses anonymous actors, sending them to the login view with
// the path they tried to reach.
func (g *Guard) RequireLogin(actor *Actor, path string) Outcome {
	if actor.IsAnonymous() {
		return Outcome{
			Redirect: g.LoginRedirect(path),
			Reason:   apperrors.ErrUnauthenticated,
		}
	}
	return Outcome{Allowed: true}
}

// RequireAuthor refuses anyone but authorID, sending them back to the post.
func (g *Guard) RequireAuthor(actor *Actor, authorID, postID uint) Outcome {
	if actor.IsAnonymous() || actor.ID != authorID {
		return Outcome{
			Redirect: PostDetailURL(postID),
			Reason:   apperrors.ErrPermissionDenied,
		}
	}
	return Outcome{Allowed: true}
}

// LoginRedirect builds the login URL remembering next.
func (g *Guard) LoginRedirect(next string) string {
	if next == "" {
		return g.loginURL
	}
	return g.loginURL + "?next=" + url.QueryEscape(next)
}

// View paths.
const (
	IndexURL  = "/"
	FollowURL = "/follow/"
	LoginURL  = "/auth/login/"
	CreateURL = "/create/"
)

func GroupURL(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func PostDetailURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func PostEditURL(id uint) string {
	return fmt.Sprintf("/posts/%d/edit/", id)
}

func PostDeleteURL(id uint) string {
	return fmt.Sprintf("/posts/%d/delete/", id)
}

func CommentURL(postID uint) string {
	return fmt.Sprintf("/posts/%d/comment/", postID)
}

func FollowProfileURL(username string) string {
	return ProfileURL(username) + "follow/"
}

func UnfollowProfileURL(username string) string {
	return ProfileURL(username) + "unfollow/"
}
