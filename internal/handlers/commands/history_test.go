package commands_test

import (
	"go.uber.org/mock/gomock"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/handlers/commands"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/dice"
	rollhistory "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/roll_history"
	rollhistorymock "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/roll_history/mock"
	"github.com/NekroDarkmoon/Zen.A5E/internal/services/conversion"
)

// withHistory rebuilds the handler with a roll history store
func (s *HandlerTestSuite) withHistory() *rollhistorymock.MockRepository {
	history := rollhistorymock.NewMockRepository(s.ctrl)

	converter, err := conversion.NewConverter()
	s.Require().NoError(err)

	handler, err := commands.NewHandler(&commands.HandlerConfig{
		Lookup:    s.lookup,
		Converter: converter,
		Dice:      s.dice,
		Settings:  s.settings,
		History:   history,
		Clock:     s.clock,
		BotID:     "zen",
	})
	s.Require().NoError(err)
	s.handler = handler
	return history
}

func (s *HandlerTestSuite) TestRollIsRecorded() {
	history := s.withHistory()
	s.defaultPrefix()
	s.admit()
	s.dice.EXPECT().
		Roll(s.ctx, &dice.RollInput{Notation: "1d20+5"}).
		Return(&dice.RollOutput{Notation: "1d20+5", Dice: []int{12}, Modifier: 5, Total: 17}, nil)
	history.EXPECT().
		Record(s.ctx, rollhistory.RecordInput{
			UserID: "alice",
			Entry: rollhistory.Entry{
				Notation: "1d20+5",
				Dice:     []int{12},
				Modifier: 5,
				Total:    17,
				RolledAt: s.clock.Now(),
			},
		}).
		Return(nil)

	s.Require().NoError(s.send("?roll 1d20+5"))
	s.Equal("<@alice> rolled **1d20+5**: [12] +5 = **17**", s.lastContent())
}

func (s *HandlerTestSuite) TestRollSurvivesHistoryOutage() {
	history := s.withHistory()
	s.defaultPrefix()
	s.admit()
	s.dice.EXPECT().
		Roll(s.ctx, gomock.Any()).
		Return(&dice.RollOutput{Notation: "1d4", Dice: []int{3}, Total: 3}, nil)
	history.EXPECT().
		Record(s.ctx, gomock.Any()).
		Return(errors.Unavailable("redis down"))

	s.Require().NoError(s.send("?roll 1d4"))
	s.Equal("<@alice> rolled **1d4**: [3] = **3**", s.lastContent())
}

func (s *HandlerTestSuite) TestRerollRepeatsLastNotation() {
	history := s.withHistory()
	s.defaultPrefix()
	s.admit()
	history.EXPECT().
		Recent(s.ctx, rollhistory.RecentInput{UserID: "alice", Limit: 1}).
		Return(&rollhistory.RecentOutput{Entries: []rollhistory.Entry{{Notation: "2d6", Total: 7}}}, nil)
	s.dice.EXPECT().
		Roll(s.ctx, &dice.RollInput{Notation: "2d6"}).
		Return(&dice.RollOutput{Notation: "2d6", Dice: []int{1, 2}, Total: 3}, nil)
	history.EXPECT().Record(s.ctx, gomock.Any()).Return(nil)

	s.Require().NoError(s.send("?rr"))
	s.Equal("<@alice> rolled **2d6**: [1, 2] = **3**", s.lastContent())
}

func (s *HandlerTestSuite) TestRerollWithoutHistory() {
	history := s.withHistory()
	s.defaultPrefix()
	s.admit()
	history.EXPECT().
		Recent(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no rolls recorded for alice"))

	s.Require().NoError(s.send("?reroll"))
	s.Equal("You have no recent rolls.", s.lastContent())
}

func (s *HandlerTestSuite) TestRecentRolls() {
	history := s.withHistory()
	s.defaultPrefix()
	s.admit()
	history.EXPECT().
		Recent(s.ctx, rollhistory.RecentInput{UserID: "alice", Limit: 5}).
		Return(&rollhistory.RecentOutput{Entries: []rollhistory.Entry{
			{Notation: "1d20-1", Dice: []int{4}, Modifier: -1, Total: 3},
			{Notation: "4d6dl1", Dice: []int{6, 6, 5}, Dropped: []int{1}, Total: 17},
		}}, nil)

	s.Require().NoError(s.send("?rolls"))
	s.Equal("Recent rolls for <@alice>:\n"+
		"1. **1d20-1**: [4] -1 = **3**\n"+
		"2. **4d6dl1**: [6, 6, 5, ~~1~~] = **17**", s.lastContent())
}

func (s *HandlerTestSuite) TestHistoryCommandsNeedStore() {
	s.defaultPrefix()

	s.Require().NoError(s.send("?reroll"))
	s.Require().NoError(s.send("?rolls"))
	s.Empty(s.conv.SentMessages())
}
