// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium"
	compendiummock "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium/mock"
)

// ExpectExactMiss sets up an exact lookup that finds nothing
func ExpectExactMiss(ctx any, repo *compendiummock.MockRepository, t entities.EntityType, query string) *gomock.Call {
	return repo.EXPECT().
		Exact(ctx, compendium.ExactInput{EntityType: t, Query: query}).
		Return(nil, errors.NotFoundf("%s %q not found", t, query))
}

// ExpectExactHit sets up an exact lookup that returns rec
func ExpectExactHit(ctx any, repo *compendiummock.MockRepository, t entities.EntityType, query string, rec *entities.Record) *gomock.Call {
	return repo.EXPECT().
		Exact(ctx, compendium.ExactInput{EntityType: t, Query: query}).
		Return(&compendium.ExactOutput{Record: rec}, nil)
}

// ExpectFuzzy sets up a fuzzy lookup that returns candidates in order
func ExpectFuzzy(ctx any, repo *compendiummock.MockRepository, t entities.EntityType, query string, limit int, candidates ...*entities.Record) *gomock.Call {
	if candidates == nil {
		candidates = []*entities.Record{}
	}
	return repo.EXPECT().
		Fuzzy(ctx, compendium.FuzzyInput{EntityType: t, Query: query, Limit: limit}).
		Return(&compendium.FuzzyOutput{Candidates: candidates}, nil)
}
