package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/yahtzee-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Helper to build a committed score
func scored(c model.Category, points int) model.CategoryScore {
	return model.CategoryScore{Category: c, Points: points, Legal: true}
}

// Totals tests

func (s *ServiceSuite) TestNewTotalsStartAtZero() {
	totals := NewTotals()
	for _, agg := range totals.List() {
		s.Equal(0, agg.Points, agg.Category.String())
		s.Equal(model.SectionSpecial, agg.Category.Section())
	}
}

func (s *ServiceSuite) TestUpdateTotalsAddsPoints() {
	target := UpdateTotals(scored(model.Fives, 15), scored(model.UpperSectionScore, 10))
	s.Equal(25, target.Points)
	s.Equal(model.UpperSectionScore, target.Category)
}

func (s *ServiceSuite) TestUpdateTotalsDoesNotMutateInput() {
	original := scored(model.GrandTotal, 10)
	_ = UpdateTotals(scored(model.Chance, 20), original)
	s.Equal(10, original.Points)
}

func (s *ServiceSuite) TestUpdateTotalsBonusYahtzeeAlwaysAddsOneHundred() {
	target := UpdateTotals(scored(model.BonusYahtzee, 300), scored(model.GrandTotal, 50))
	s.Equal(150, target.Points)
}

func (s *ServiceSuite) TestAddBonusBelowThreshold() {
	totals := NewTotals()
	totals.UpperScore.Points = 62
	totals.UpperTotal.Points = 62

	totals = AddBonus(totals)
	s.Equal(0, totals.UpperBonus.Points)
	s.Equal(62, totals.UpperTotal.Points)
}

func (s *ServiceSuite) TestAddBonusAtThreshold() {
	totals := NewTotals()
	totals.UpperScore.Points = 63
	totals.UpperTotal.Points = 63
	totals.GrandTotal.Points = 63

	totals = AddBonus(totals)
	s.Equal(35, totals.UpperBonus.Points)
	s.Equal(98, totals.UpperTotal.Points)
	s.Equal(98, totals.GrandTotal.Points)
	s.Equal(63, totals.UpperScore.Points)
}

func (s *ServiceSuite) TestAddBonusIsIdempotent() {
	totals := NewTotals()
	totals.UpperScore.Points = 70
	totals.UpperTotal.Points = 70

	once := AddBonus(totals)
	twice := AddBonus(once)
	s.Equal(once, twice)
	s.Equal(35, twice.UpperBonus.Points)
	s.Equal(105, twice.UpperTotal.Points)
}

func (s *ServiceSuite) TestApplyScoreUpperReachesBonusOnce() {
	totals := NewTotals()
	for _, sc := range []model.CategoryScore{
		scored(model.Sixes, 24),
		scored(model.Fives, 20),
		scored(model.Fours, 16),
		scored(model.Threes, 9),
		scored(model.Twos, 6),
	} {
		totals = ApplyScore(totals, sc)
	}

	s.Equal(75, totals.UpperScore.Points)
	s.Equal(35, totals.UpperBonus.Points)
	s.Equal(110, totals.UpperTotal.Points)
	s.Equal(0, totals.LowerTotal.Points)
	s.Equal(110, totals.GrandTotal.Points)
}

func (s *ServiceSuite) TestApplyScoreLower() {
	totals := ApplyScore(NewTotals(), scored(model.FullHouse, 25))
	s.Equal(25, totals.LowerTotal.Points)
	s.Equal(25, totals.GrandTotal.Points)
	s.Equal(0, totals.UpperScore.Points)
	s.Equal(0, totals.UpperTotal.Points)
}

func (s *ServiceSuite) TestApplyScoreIgnoresAggregates() {
	totals := ApplyScore(NewTotals(), scored(model.GrandTotal, 500))
	s.Equal(NewTotals(), totals)
}

func (s *ServiceSuite) TestReset() {
	score := Reset(scored(model.Chance, 22))
	s.Equal(model.Unscored, score.Points)
	s.False(score.IsScored())
}

func (s *ServiceSuite) TestTotalScoreExcludesAggregatesAndUnscored() {
	scores := []model.CategoryScore{
		scored(model.Aces, 3),
		scored(model.Chance, 20),
		Reset(scored(model.Yahtzee, 0)),
		scored(model.GrandTotal, 999),
	}
	s.Equal(23, TotalScore(scores))
}

// Evaluate tests

func (s *ServiceSuite) TestEvaluateAllCoversSelectableCategories() {
	dice, err := model.ParseDice(2, 2, 2, 3, 3)
	s.Require().NoError(err)

	scores := s.service.EvaluateAll(dice)
	s.Len(scores, 14)

	byCategory := make(map[model.Category]model.CategoryScore)
	for _, sc := range scores {
		byCategory[sc.Category] = sc
	}
	s.Equal(6, byCategory[model.Twos].Points)
	s.Equal(25, byCategory[model.FullHouse].Points)
	s.Equal(12, byCategory[model.ThreeOfAKind].Points)
	s.False(byCategory[model.Yahtzee].Legal)
}

// Ranking tests

func (s *ServiceSuite) player(name string, grand int) model.PlayerState {
	totals := NewTotals()
	totals.GrandTotal.Points = grand
	return model.PlayerState{Username: name, Totals: totals}
}

func (s *ServiceSuite) TestRankSortsByGrandTotal() {
	standings := s.service.Rank([]model.PlayerState{
		s.player("alice", 120),
		s.player("bob", 250),
		s.player("carol", 180),
	})

	s.Require().Len(standings, 3)
	s.Equal("bob", standings[0].Username)
	s.Equal("carol", standings[1].Username)
	s.Equal("alice", standings[2].Username)
}

func (s *ServiceSuite) TestDetermineWinner() {
	standings := s.service.Rank([]model.PlayerState{
		s.player("alice", 120),
		s.player("bob", 250),
	})
	s.Equal("bob", s.service.DetermineWinner(standings))
}

func (s *ServiceSuite) TestDetermineWinnerTie() {
	standings := s.service.Rank([]model.PlayerState{
		s.player("alice", 200),
		s.player("bob", 200),
	})
	s.Equal("", s.service.DetermineWinner(standings))
}

func (s *ServiceSuite) TestDetermineWinnerEmpty() {
	s.Equal("", s.service.DetermineWinner(nil))
}
