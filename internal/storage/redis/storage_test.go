package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/yahtzee-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TableTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newTable(id model.TableID) *model.Table {
	tentative := model.CategoryScore{Category: model.FullHouse, Dice: []model.Dice{2, 2, 3, 3, 3}, Points: 25, Legal: true}
	return &model.Table{
		ID:        id,
		State:     model.TableStatePlaying,
		RollLimit: 3,
		Players: []model.PlayerState{
			{
				Username:  "alice",
				Dice:      []model.ThrownDice{{Value: 2, Held: true}, {Value: 2}, {Value: 3}, {Value: 3}, {Value: 3}},
				RollsUsed: 2,
				Tentative: &tentative,
				Scores: []model.CategoryScore{
					{Category: model.Aces, Dice: []model.Dice{1, 1, 4, 5, 6}, Points: 2, Legal: true},
				},
				Totals: model.Totals{
					UpperScore: model.CategoryScore{Category: model.UpperSectionScore, Points: 2, Legal: true},
					GrandTotal: model.CategoryScore{Category: model.GrandTotal, Points: 2, Legal: true},
				},
				Turn: 1,
			},
		},
		CurrentIdx: 0,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}
}

// Table tests

func (s *StorageSuite) TestSaveAndGetTable() {
	table := newTable("table-1")

	err := s.storage.SaveTable(s.ctx, table)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTable(s.ctx, "table-1")
	s.Require().NoError(err)
	s.Equal(table.ID, retrieved.ID)
	s.Equal(table.State, retrieved.State)
	s.Equal(table.Players, retrieved.Players)
	s.True(table.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetTableNotFound() {
	_, err := s.storage.GetTable(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestTableTTL() {
	_ = s.storage.SaveTable(s.ctx, newTable("table-1"))

	ttl := s.mini.TTL(tableKey("table-1"))
	s.Equal(time.Hour, ttl)

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetTable(s.ctx, "table-1")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestDeleteTable() {
	_ = s.storage.SaveTable(s.ctx, newTable("table-1"))

	err := s.storage.DeleteTable(s.ctx, "table-1")
	s.Require().NoError(err)

	_, err = s.storage.GetTable(s.ctx, "table-1")
	s.ErrorIs(err, model.ErrTableNotFound)
}

// Active table tests

func (s *StorageSuite) TestActiveTableNotSet() {
	_, err := s.storage.GetActiveTable(s.ctx)
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestSetAndGetActiveTable() {
	s.Require().NoError(s.storage.SetActiveTable(s.ctx, "table-1"))

	id, err := s.storage.GetActiveTable(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.TableID("table-1"), id)
	s.Equal(time.Hour, s.mini.TTL(activeTableKey()))
}

func (s *StorageSuite) TestSaveRefreshesActiveTableTTL() {
	_ = s.storage.SetActiveTable(s.ctx, "table-1")
	s.mini.FastForward(30 * time.Minute)

	_ = s.storage.SaveTable(s.ctx, newTable("table-1"))
	s.Equal(time.Hour, s.mini.TTL(activeTableKey()))
}

func (s *StorageSuite) TestClearActiveTable() {
	_ = s.storage.SetActiveTable(s.ctx, "table-1")
	s.Require().NoError(s.storage.ClearActiveTable(s.ctx))

	_, err := s.storage.GetActiveTable(s.ctx)
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestDeleteActiveTableClearsPointer() {
	_ = s.storage.SaveTable(s.ctx, newTable("table-1"))
	_ = s.storage.SetActiveTable(s.ctx, "table-1")

	_ = s.storage.DeleteTable(s.ctx, "table-1")

	_, err := s.storage.GetActiveTable(s.ctx)
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestDeleteOtherTableKeepsPointer() {
	_ = s.storage.SaveTable(s.ctx, newTable("table-1"))
	_ = s.storage.SaveTable(s.ctx, newTable("table-2"))
	_ = s.storage.SetActiveTable(s.ctx, "table-2")

	_ = s.storage.DeleteTable(s.ctx, "table-1")

	id, err := s.storage.GetActiveTable(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.TableID("table-2"), id)
}
