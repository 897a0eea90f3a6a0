package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/fixturekit/di"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/fakedata"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/logger"
)

// Reference names.
const (
	RefUser      = "user"
	RefPost      = "post"
	RefAdmin     = "admin-user"
	RefTopAuthor = "top-author"
)

// Group sizes.
const (
	UserCount          = 10
	PostCount          = 30
	MaxCommentsPerPost = 3
)

// Fixtures returns a fresh set of demo fixtures.
func Fixtures() []fixture.Fixture {
	return []fixture.Fixture{&UserFixture{}, &PostFixture{}, &CommentFixture{}}
}

// fake returns the gofakeit generator behind f. The demo draws names and
// text from it, so any other Faker is rejected rather than replaced.
func fake(f fixture.Faker) (*fakedata.Faker, error) {
	g, ok := f.(*fakedata.Faker)
	if !ok {
		return nil, errors.InvalidInput("faker", fmt.Sprintf("demo fixtures need a *fakedata.Faker, got %T", f))
	}
	return g, nil
}

// commentDraft is filled by go-faker for every comment.
type commentDraft struct {
	Body  string `faker:"sentence"`
	Title string `faker:"word"`
}

// UserFixture creates the users. The first one is the admin. Passwords are
// hashed by the container's PasswordHasher, or by bcrypt at its default cost
// when none is registered.
type UserFixture struct{ fixture.Base }

func (f *UserFixture) Order() int { return 10 }

func (f *UserFixture) DoLoad(ctx context.Context) error {
	g, err := fake(f.Faker())
	if err != nil {
		return err
	}
	hasher, ok := di.TryResolve[PasswordHasher](f.Container(), HasherKey)
	if !ok {
		hasher = NewBcryptHasher(0)
	}
	password, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = f.Create(ctx, UserCount, RefUser, func(_ context.Context, s fixture.Step) (any, error) {
		u := &User{
			Name:     g.Name(),
			Email:    fmt.Sprintf("%s.%d@%s", strings.ToLower(g.Username()), s.Position, g.DomainName()),
			Password: password,
			Role:     RoleMember,
		}
		if s.Position == 1 {
			u.Email = "admin@example.com"
			u.Role = RoleAdmin
		}
		return u, nil
	})
	if err != nil {
		return err
	}

	users, err := fixture.All[*User](f, RefUser)
	if err != nil {
		return err
	}
	return f.AddReference(RefAdmin, users[0])
}

// PostFixture creates posts by random authors.
type PostFixture struct{ fixture.Base }

func (f *PostFixture) Order() int { return 20 }

func (f *PostFixture) DoLoad(ctx context.Context) error {
	g, err := fake(f.Faker())
	if err != nil {
		return err
	}
	return f.Create(ctx, PostCount, RefPost, func(_ context.Context, s fixture.Step) (any, error) {
		author, err := fixture.Random[*User](f, RefUser)
		if err != nil {
			return nil, err
		}
		title := strings.TrimSuffix(g.Sentence(5), ".")
		return &Post{
			AuthorID: author.ID,
			Title:    title,
			Slug:     f.Slugify(fmt.Sprintf("%s %d", title, s.Position)),
			Body:     g.Paragraph(2, 3, 12, "\n\n"),
		}, nil
	})
}

// CommentFixture adds up to MaxCommentsPerPost comments to every post, then
// stores each user's post count.
type CommentFixture struct {
	fixture.Base
	created int
}

func (f *CommentFixture) Order() int { return 30 }

// Created returns how many comments the last load persisted.
func (f *CommentFixture) Created() int { return f.created }

func (f *CommentFixture) DoLoad(ctx context.Context) error {
	g, err := fake(f.Faker())
	if err != nil {
		return err
	}
	f.created = 0

	perAuthor := make(map[string]int)
	err = f.Each(ctx, RefPost, func(ctx context.Context, obj any) error {
		post := obj.(*Post)
		perAuthor[post.AuthorID.String()]++

		for i := f.Faker().Number(0, MaxCommentsPerPost); i > 0; i-- {
			author, err := fixture.Random[*User](f, RefUser)
			if err != nil {
				return err
			}
			var draft commentDraft
			if err := g.FakeStruct(&draft); err != nil {
				return fmt.Errorf("fake comment: %w", err)
			}
			c := &Comment{PostID: post.ID, AuthorID: author.ID, Body: draft.Title + ": " + draft.Body}
			if err := f.Persist(ctx, c); err != nil {
				return err
			}
			f.created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	var top *User
	err = f.Each(ctx, RefUser, func(ctx context.Context, obj any) error {
		u := obj.(*User)
		u.Posts = perAuthor[u.ID.String()]
		if top == nil || u.Posts > top.Posts {
			top = u
		}
		return f.Persist(ctx, u)
	})
	if err != nil {
		return err
	}

	if top == nil {
		return nil
	}
	if err := f.SetReference(RefTopAuthor, top); err != nil {
		return err
	}
	f.Logger().Debug("comments created", logger.Fields(
		logger.FieldFixture, "CommentFixture",
		"comments", f.created,
		"top_author", top.Email,
	))
	return nil
}
