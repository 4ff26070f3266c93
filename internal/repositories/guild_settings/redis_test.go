package guildsettings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	guildsettings "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/guild_settings"
	"github.com/NekroDarkmoon/Zen.A5E/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    guildsettings.Repository
	ctx     context.Context
	cleanup func()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := guildsettings.NewRedisRepository(&guildsettings.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestGetPrefixesDefault() {
	out, err := s.repo.GetPrefixes(s.ctx, guildsettings.GetPrefixesInput{GuildID: "g1"})
	s.Require().NoError(err)
	s.False(out.Custom)
	s.Empty(out.Prefixes)
}

func (s *RedisRepositoryTestSuite) TestSetPrefixesNormalizes() {
	out, err := s.repo.SetPrefixes(s.ctx, guildsettings.SetPrefixesInput{
		GuildID:  "g1",
		Prefixes: []string{"?", "!", "?", " ", "zen "},
	})
	s.Require().NoError(err)
	s.Equal([]string{"zen", "?", "!"}, out.Prefixes)

	got, err := s.repo.GetPrefixes(s.ctx, guildsettings.GetPrefixesInput{GuildID: "g1"})
	s.Require().NoError(err)
	s.True(got.Custom)
	s.Equal(out.Prefixes, got.Prefixes)
}

func (s *RedisRepositoryTestSuite) TestSetPrefixesEmptyIsCustom() {
	_, err := s.repo.SetPrefixes(s.ctx, guildsettings.SetPrefixesInput{GuildID: "g1"})
	s.Require().NoError(err)

	got, err := s.repo.GetPrefixes(s.ctx, guildsettings.GetPrefixesInput{GuildID: "g1"})
	s.Require().NoError(err)
	s.True(got.Custom)
	s.Empty(got.Prefixes)
}

func (s *RedisRepositoryTestSuite) TestSetPrefixesLimit() {
	prefixes := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	_, err := s.repo.SetPrefixes(s.ctx, guildsettings.SetPrefixesInput{GuildID: "g1", Prefixes: prefixes})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestBlacklist() {
	s.Require().NoError(s.repo.AddToBlacklist(s.ctx, guildsettings.BlacklistInput{ID: "u-bad"}))

	out, err := s.repo.IsBlacklisted(s.ctx, guildsettings.IsBlacklistedInput{IDs: []string{"u-good", "u-bad"}})
	s.Require().NoError(err)
	s.True(out.Blacklisted)

	out, err = s.repo.IsBlacklisted(s.ctx, guildsettings.IsBlacklistedInput{IDs: []string{"u-good", ""}})
	s.Require().NoError(err)
	s.False(out.Blacklisted)

	s.Require().NoError(s.repo.RemoveFromBlacklist(s.ctx, guildsettings.BlacklistInput{ID: "u-bad"}))
	s.Require().NoError(s.repo.RemoveFromBlacklist(s.ctx, guildsettings.BlacklistInput{ID: "never-added"}))

	out, err = s.repo.IsBlacklisted(s.ctx, guildsettings.IsBlacklistedInput{IDs: []string{"u-bad"}})
	s.Require().NoError(err)
	s.False(out.Blacklisted)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.GetPrefixes(s.ctx, guildsettings.GetPrefixesInput{})
	s.True(errors.IsInvalidArgument(err))
	s.True(errors.IsInvalidArgument(s.repo.AddToBlacklist(s.ctx, guildsettings.BlacklistInput{})))

	_, err = guildsettings.NewRedisRepository(&guildsettings.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisUnavailable(t *testing.T) {
	client, mr, _ := testutils.CreateTestRedisServer(t, nil)
	defer client.Close()

	repo, err := guildsettings.NewRedisRepository(&guildsettings.Config{Client: client})
	if err != nil {
		t.Fatal(err)
	}
	mr.Close()

	_, err = repo.GetPrefixes(context.Background(), guildsettings.GetPrefixesInput{GuildID: "g1"})
	if !errors.IsUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
