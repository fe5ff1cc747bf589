package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/yahtzee-go/internal/api"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "yahtzee-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/yahtzee")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.runWithInput("", args...)
}

func (r *cliRunner) runWithInput(input string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Stdin = strings.NewReader(input)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger, EnableMetrics: true})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		ScoringService: app.ScoringService,
		HubManager:     app.HubManager,
		BotService:     app.BotService,
		Metrics:        app.Metrics,
		Gatherer:       app.Registry,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = addr
	server := api.NewServer(router, serverCfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			app.HubManager.CloseAll()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

func decode[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "ok", decode[response.Health](t, output).Status)
}

func TestCLI_TableAndTurn(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("table", "create")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "waiting", decode[response.Table](t, output).State)

	for _, name := range []string{"alice", "bob"} {
		output, err = cli.run("table", "join", name)
		require.NoError(t, err, "output: %s", output)
	}

	output, err = cli.run("table", "start")
	require.NoError(t, err, "output: %s", output)
	table := decode[response.Table](t, output)
	require.NotNil(t, table.CurrentPlayer)
	assert.Equal(t, "alice", *table.CurrentPlayer)

	// bob cannot act out of turn
	output, err = cli.run("turn", "roll", "bob")
	require.Error(t, err)
	assert.Contains(t, output, "NOT_YOUR_TURN")

	output, err = cli.run("turn", "roll", "alice")
	require.NoError(t, err, "output: %s", output)
	alice := decode[response.Table](t, output).Players[0]
	require.Len(t, alice.Dice, 5)
	sum := 0
	for _, d := range alice.Dice {
		assert.GreaterOrEqual(t, d.Value, 1)
		assert.LessOrEqual(t, d.Value, 6)
		sum += d.Value
	}

	output, err = cli.run("turn", "hold", "alice", "0", "4")
	require.NoError(t, err, "output: %s", output)
	alice = decode[response.Table](t, output).Players[0]
	assert.True(t, alice.Dice[0].Held)
	assert.True(t, alice.Dice[4].Held)

	output, err = cli.run("turn", "unhold", "alice", "0", "4")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("turn", "select", "alice", "chance")
	require.NoError(t, err, "output: %s", output)
	alice = decode[response.Table](t, output).Players[0]
	require.NotNil(t, alice.Tentative)
	assert.Equal(t, sum, alice.Tentative.Points)

	output, err = cli.run("turn", "end", "alice")
	require.NoError(t, err, "output: %s", output)
	table = decode[response.Table](t, output)
	assert.Equal(t, "bob", *table.CurrentPlayer)

	output, err = cli.run("table", "standings")
	require.NoError(t, err, "output: %s", output)
	standings := decode[response.StandingsResponse](t, output)
	require.Len(t, standings.Standings, 2)
	assert.Equal(t, response.Standing{Username: "alice", GrandTotal: sum}, standings.Standings[0])

	output, err = cli.run("table", "abandon")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "abandoned", decode[response.Table](t, output).State)
}

func TestCLI_Score(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("score", "3", "3", "3", "5", "5", "--category", "full_house")
	require.NoError(t, err, "output: %s", output)
	resp := decode[response.ScoreResponse](t, output)
	require.Len(t, resp.Scores, 1)
	assert.Equal(t, 25, resp.Scores[0].Points)

	output, err = cli.run("score", "1", "2", "3", "4", "9")
	require.Error(t, err)
	assert.Contains(t, output, "INVALID_DICE")
}

func TestCLI_PlayWithoutServer(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.runWithInput("r\nq\n", "play", "alice", "bob")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "alice> ")
	assert.Contains(t, output, "Game abandoned")
}
