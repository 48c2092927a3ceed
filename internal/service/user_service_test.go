package service

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/model"
	"Evergreen/internal/pkg/es"
	"Evergreen/internal/pkg/security"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and returns token", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		esRepo := newFakeESUserRepo()
		svc := NewUserService(userRepo, esRepo, &fakeGoogleVerifier{})

		auth, err := svc.Register(ctx, &dto.RegisterDTO{
			Email:    "alice@example.com",
			Password: "secret-pass",
			Name:     "Alice",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, auth.Token)
		assert.NotEmpty(t, auth.User.UID)
		assert.Equal(t, "alice@example.com", auth.User.Email)
		assert.Equal(t, "password", auth.User.Provider)
		// 无头像，引导补全资料
		assert.True(t, auth.ShowProfileCompletion)

		stored, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.NotNil(t, stored.Password)
		assert.NotEqual(t, "secret-pass", *stored.Password)

		// 注册即入索引
		assert.Contains(t, esRepo.indexed, stored.UID)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), newFakeESUserRepo(), &fakeGoogleVerifier{})
		_, err := svc.Register(ctx, &dto.RegisterDTO{
			Email:    "alice@example.com",
			Password: "short",
			Name:     "Alice",
		})
		assert.ErrorIs(t, err, ErrPasswordWeak)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), newFakeESUserRepo(), &fakeGoogleVerifier{})
		req := &dto.RegisterDTO{Email: "alice@example.com", Password: "secret-pass", Name: "Alice"}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrUserExist)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), newFakeESUserRepo(), &fakeGoogleVerifier{})
	_, err := svc.Register(ctx, &dto.RegisterDTO{
		Email:    "alice@example.com",
		Password: "secret-pass",
		Name:     "Alice",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		auth, err := svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "secret-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, auth.Token)
		assert.Equal(t, "Alice", auth.User.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginDTO{Email: "nobody@example.com", Password: "secret-pass"})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("federated account has no password", func(t *testing.T) {
		verifier := &fakeGoogleVerifier{info: &security.GoogleTokenInfo{
			Email: "fed@example.com",
			Name:  "Fed",
		}}
		fedSvc := NewUserService(newFakeUserRepo(), newFakeESUserRepo(), verifier)
		_, err := fedSvc.LoginWithGoogle(ctx, &dto.GoogleLoginDTO{IDToken: "token"})
		require.NoError(t, err)

		_, err = fedSvc.Login(ctx, &dto.LoginDTO{Email: "fed@example.com", Password: "anything"})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("first login creates profile", func(t *testing.T) {
		verifier := &fakeGoogleVerifier{info: &security.GoogleTokenInfo{
			Email:   "alice@example.com",
			Name:    "Alice",
			Picture: "https://lh3.example.com/a.jpg",
		}}
		userRepo := newFakeUserRepo()
		svc := NewUserService(userRepo, newFakeESUserRepo(), verifier)

		auth, err := svc.LoginWithGoogle(ctx, &dto.GoogleLoginDTO{IDToken: "token"})
		require.NoError(t, err)
		assert.Equal(t, "google", auth.User.Provider)
		assert.Equal(t, "https://lh3.example.com/a.jpg", auth.User.PhotoURL)
		assert.False(t, auth.ShowProfileCompletion)

		stored, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.Password)
	})

	t.Run("merge fills only empty fields", func(t *testing.T) {
		existing := &model.User{
			UID:      "u-1",
			Email:    "alice@example.com",
			Name:     "Alice Local",
			Provider: "password",
		}
		verifier := &fakeGoogleVerifier{info: &security.GoogleTokenInfo{
			Email:   "alice@example.com",
			Name:    "Alice Google",
			Picture: "https://lh3.example.com/a.jpg",
		}}
		userRepo := newFakeUserRepo(existing)
		svc := NewUserService(userRepo, newFakeESUserRepo(), verifier)

		auth, err := svc.LoginWithGoogle(ctx, &dto.GoogleLoginDTO{IDToken: "token"})
		require.NoError(t, err)
		// 已有姓名不被覆盖，空头像被补齐
		assert.Equal(t, "Alice Local", auth.User.Name)
		assert.Equal(t, "https://lh3.example.com/a.jpg", auth.User.PhotoURL)
		assert.Equal(t, "u-1", auth.User.UID)
	})

	t.Run("invalid token", func(t *testing.T) {
		verifier := &fakeGoogleVerifier{err: errors.New("audience mismatch")}
		svc := NewUserService(newFakeUserRepo(), newFakeESUserRepo(), verifier)

		_, err := svc.LoginWithGoogle(ctx, &dto.GoogleLoginDTO{IDToken: "bad"})
		assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	user := &model.User{UID: "u-1", Email: "alice@example.com", Name: "Alice"}
	userRepo := newFakeUserRepo(user)
	esRepo := newFakeESUserRepo()
	svc := NewUserService(userRepo, esRepo, &fakeGoogleVerifier{})

	t.Run("get", func(t *testing.T) {
		profile, err := svc.GetProfile(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", profile.Name)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("update name and bio", func(t *testing.T) {
		name := "Alice W"
		bio := "hello there"
		profile, err := svc.UpdateProfile(ctx, "u-1", &dto.UpdateProfileDTO{Name: &name, Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "Alice W", profile.Name)
		require.NotNil(t, profile.Bio)
		assert.Equal(t, "hello there", *profile.Bio)

		// 资料变更同步进索引
		doc, ok := esRepo.indexed["u-1"]
		require.True(t, ok)
		assert.Equal(t, "Alice W", doc.Name)
	})

	t.Run("partial update keeps the rest", func(t *testing.T) {
		bio := "only bio"
		profile, err := svc.UpdateProfile(ctx, "u-1", &dto.UpdateProfileDTO{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "Alice W", profile.Name)
	})

	t.Run("avatar writeback reindexes", func(t *testing.T) {
		require.NoError(t, svc.UpdateAvatar(ctx, "u-1", "https://cdn.example.com/avatars/a.jpg"))
		assert.Equal(t, "https://cdn.example.com/avatars/a.jpg", user.PhotoURL)
		assert.Equal(t, "https://cdn.example.com/avatars/a.jpg", esRepo.indexed["u-1"].AvatarURL)
	})
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	esRepo := newFakeESUserRepo()
	svc := NewUserService(newFakeUserRepo(), esRepo, &fakeGoogleVerifier{})

	bio := "gopher"
	require.NoError(t, esRepo.IndexUser(ctx, &es.UserES{
		UID:   "u-1",
		Email: "alice@example.com",
		Name:  "Alice",
		Bio:   &bio,
	}))

	res, err := svc.SearchUsers(ctx, "Alice", 0, 20)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "u-1", res[0].UID)
	require.NotNil(t, res[0].Bio)
	assert.Equal(t, "gopher", *res[0].Bio)
}
