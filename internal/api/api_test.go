package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/yahtzee-go/internal/api"
	"github.com/mcoot/yahtzee-go/internal/api/apierr"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/factory"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/testutil"
)

// testServer wires the router to a test app with queued dice
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		ScoringService: app.ScoringService,
		HubManager:     app.HubManager,
		BotService:     app.BotService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

// startTable opens a table, seats the players and starts the game
func (ts *testServer) startTable(t *testing.T, players ...string) {
	t.Helper()
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)
	for _, p := range players {
		rr := ts.request(http.MethodPost, "/api/v1/table/players", map[string]string{"username": p})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/start", nil).Code)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[response.Health](t, rr).Status)
}

func TestGetTableBeforeCreate(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/table", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeTableNotFound, errorCode(t, rr))
}

func TestCreateTable(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/table", map[string]int{"roll_limit": 4})
	require.Equal(t, http.StatusCreated, rr.Code)

	table := decode[response.Table](t, rr)
	assert.Equal(t, "waiting", table.State)
	assert.Equal(t, 4, table.RollLimit)
	assert.Nil(t, table.CurrentPlayer)

	rr = ts.request(http.MethodPost, "/api/v1/table", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeTableInProgress, errorCode(t, rr))
}

func TestCreateTableRejectsBadBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/table", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestAddAndRemovePlayers(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)

	rr := ts.request(http.MethodPost, "/api/v1/table/players", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusCreated, rr.Code)
	table := decode[response.Table](t, rr)
	require.Len(t, table.Players, 1)
	assert.Equal(t, "alice", table.Players[0].Username)
	assert.Equal(t, "not_rolled", table.Players[0].Phase)
	assert.Equal(t, 3, table.Players[0].RollsLeft)
	assert.Len(t, table.Players[0].Available, 13)

	rr = ts.request(http.MethodPost, "/api/v1/table/players", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeUsernameTaken, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/table/players", map[string]string{"username": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/table/players/alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[response.Table](t, rr).Players)

	rr = ts.request(http.MethodDelete, "/api/v1/table/players/alice", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartRequiresPlayers(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)

	rr := ts.request(http.MethodPost, "/api/v1/table/start", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeInsufficientPlayers, errorCode(t, rr))
}

func TestTurnFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.startTable(t, "alice", "bob")

	// Roll
	ts.app.QueueTurn(2, 2, 5, 3, 3)
	rr := ts.request(http.MethodPost, "/api/v1/table/players/alice/roll", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	alice := decode[response.Table](t, rr).Players[0]
	assert.Equal(t, "rolled", alice.Phase)
	assert.Equal(t, 2, alice.RollsLeft)

	// Hold the pairs, re-roll the odd die into a full house
	for _, idx := range []string{"0", "1", "3", "4"} {
		rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/hold/"+idx, nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	ts.app.QueueTurn(2)
	rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/roll", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	alice = decode[response.Table](t, rr).Players[0]
	assert.Equal(t, []response.Die{
		{Value: 2, Held: true}, {Value: 2, Held: true}, {Value: 2}, {Value: 3, Held: true}, {Value: 3, Held: true},
	}, alice.Dice)

	rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/unhold/0", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Select
	rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/select", map[string]string{"category": "full_house"})
	require.Equal(t, http.StatusOK, rr.Code)
	alice = decode[response.Table](t, rr).Players[0]
	require.NotNil(t, alice.Tentative)
	assert.Equal(t, 25, alice.Tentative.Points)
	assert.True(t, alice.Tentative.Legal)

	// End turn
	rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/end-turn", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	table := decode[response.Table](t, rr)
	require.NotNil(t, table.CurrentPlayer)
	assert.Equal(t, "bob", *table.CurrentPlayer)
	assert.Equal(t, 25, table.Players[0].Totals.GrandTotal)
	assert.Equal(t, "not_rolled", table.Players[0].Phase)
	assert.NotContains(t, table.Players[0].Available, "full_house")
}

func TestTurnErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.startTable(t, "alice", "bob")

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{"out of turn", "/api/v1/table/players/bob/roll", nil, http.StatusForbidden, apierr.CodeNotYourTurn},
		{"unknown player", "/api/v1/table/players/mallory/roll", nil, http.StatusNotFound, apierr.CodePlayerNotFound},
		{"hold before roll", "/api/v1/table/players/alice/hold/0", nil, http.StatusConflict, apierr.CodeNotRolled},
		{"bad index", "/api/v1/table/players/alice/hold/x", nil, http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"end without select", "/api/v1/table/players/alice/end-turn", nil, http.StatusConflict, apierr.CodeNoCategorySelected},
		{"unknown category", "/api/v1/table/players/alice/select", map[string]string{"category": "pair"}, http.StatusBadRequest, apierr.CodeUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestSelectAggregateRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.startTable(t, "alice")

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/players/alice/roll", nil).Code)
	rr := ts.request(http.MethodPost, "/api/v1/table/players/alice/select", map[string]string{"category": "grand_total"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeSpecialCategory, errorCode(t, rr))
}

func TestStandings(t *testing.T) {
	ts := newTestServer(t)
	ts.startTable(t, "alice", "bob")

	ts.app.QueueTurn(6, 6, 6, 1, 2)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/players/alice/roll", nil).Code)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/players/alice/select", map[string]string{"category": "sixes"}).Code)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/players/alice/end-turn", nil).Code)

	rr := ts.request(http.MethodGet, "/api/v1/table/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[response.StandingsResponse](t, rr)
	assert.Equal(t, "playing", resp.State)
	assert.Nil(t, resp.Winner)
	assert.Equal(t, []response.Standing{{Username: "alice", GrandTotal: 18}, {Username: "bob", GrandTotal: 0}}, resp.Standings)
}

func TestAbandonTable(t *testing.T) {
	ts := newTestServer(t)
	ts.startTable(t, "alice")

	rr := ts.request(http.MethodDelete, "/api/v1/table", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abandoned", decode[response.Table](t, rr).State)

	rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/roll", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameAbandoned, errorCode(t, rr))

	assert.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)
}

func TestScoreEvaluatesAllCategories(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/score", map[string]any{"dice": []int{1, 2, 3, 4, 5}})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.ScoreResponse](t, rr)
	assert.Len(t, resp.Scores, 14)
	byCategory := make(map[string]response.CategoryScore)
	for _, s := range resp.Scores {
		byCategory[s.Category] = s
	}
	assert.Equal(t, 40, byCategory["large_straight"].Points)
	assert.Equal(t, 30, byCategory["small_straight"].Points)
	assert.False(t, byCategory["full_house"].Legal)
	assert.Equal(t, "Large Straight", byCategory["large_straight"].DisplayName)
}

func TestScoreSingleCategory(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/score", map[string]any{"dice": []int{4, 4, 4, 4, 4}, "category": "yahtzee"})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.ScoreResponse](t, rr)
	require.Len(t, resp.Scores, 1)
	assert.Equal(t, 50, resp.Scores[0].Points)
}

func TestScoreValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/score", map[string]any{"dice": []int{1, 2, 3}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/score", map[string]any{"dice": []int{1, 2, 3, 4, 7}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidDice, errorCode(t, rr))
}

func TestMetricsEndpoint(t *testing.T) {
	app, err := factory.New(factory.Config{EnableMetrics: true})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		ScoringService: app.ScoringService,
		HubManager:     app.HubManager,
		BotService:     app.BotService,
		Metrics:        app.Metrics,
		Gatherer:       app.Registry,
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/table", nil))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `yahtzee_http_requests_total{method="POST",route="/api/v1/table",status="201"} 1`)
}

func TestEventsWebsocket(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/table/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	table := decode[response.Table](t, ts.request(http.MethodGet, "/api/v1/table", nil))
	hub := ts.app.HubManager.GetHub(modelTableID(table.ID))
	require.NotNil(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table/players", map[string]string{"username": "alice"}).Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt response.Event
	require.NoError(t, json.Unmarshal(data, &evt))
	assert.Equal(t, "player_joined", evt.Type)
	assert.Equal(t, "alice", evt.Username)
	assert.Equal(t, table.ID, evt.TableID)
}

func TestEventsHubClosesWithTable(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/table/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	table := decode[response.Table](t, ts.request(http.MethodGet, "/api/v1/table", nil))
	id := modelTableID(table.ID)
	hub := ts.app.HubManager.GetHub(id)
	require.NotNil(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.Equal(t, http.StatusOK, ts.request(http.MethodDelete, "/api/v1/table", nil).Code)
	assert.Nil(t, ts.app.HubManager.GetHub(id))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var evt response.Event
	require.NoError(t, json.Unmarshal(data, &evt))
	assert.Equal(t, "game_abandoned", evt.Type)

	// No new hub for a table that has finished
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Nil(t, ts.app.HubManager.GetHub(id))
}

func modelTableID(id string) model.TableID {
	return model.TableID(id)
}

func TestAddBotAndPlayAfterHuman(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table/players", map[string]string{"username": "alice"}).Code)

	rr := ts.request(http.MethodPost, "/api/v1/table/bots", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	table := decode[response.Table](t, rr)
	require.Len(t, table.Players, 2)
	assert.Equal(t, "Bot 1", table.Players[1].Username)
	assert.Equal(t, "greedy", table.Players[1].Bot)
	assert.Empty(t, table.Players[0].Bot)

	rr = ts.request(http.MethodPost, "/api/v1/table/bots", map[string]string{"strategy": "clever"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownStrategy, errorCode(t, rr))

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/start", nil).Code)

	ts.app.QueueTurn(1, 2, 3, 4, 6)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/players/alice/roll", nil).Code)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/table/players/alice/select", map[string]string{"category": "chance"}).Code)

	// The bot rolls five ones from the empty queue and takes the Yahtzee
	rr = ts.request(http.MethodPost, "/api/v1/table/players/alice/end-turn", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	table = decode[response.Table](t, rr)
	require.NotNil(t, table.CurrentPlayer)
	assert.Equal(t, "alice", *table.CurrentPlayer)

	botPlayer := table.Players[1]
	assert.Equal(t, 1, botPlayer.Turn)
	require.Len(t, botPlayer.Scores, 1)
	assert.Equal(t, "yahtzee", botPlayer.Scores[0].Category)
	assert.Equal(t, 50, botPlayer.Scores[0].Points)
}

func TestBotOnlyTableCompletesOnStart(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table", nil).Code)
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/api/v1/table/bots", map[string]string{"strategy": "greedy"}).Code)

	rr := ts.request(http.MethodPost, "/api/v1/table/start", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	table := decode[response.Table](t, rr)
	assert.Equal(t, "complete", table.State)
	assert.Nil(t, table.CurrentPlayer)
	assert.True(t, table.Players[0].Finished)
	assert.Equal(t, 170, table.Players[0].Totals.GrandTotal)
}
