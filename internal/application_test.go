package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mastermind/internal/config"
	"github.com/rocketscienceinc/mastermind/internal/entity"
	"github.com/rocketscienceinc/mastermind/internal/repository"
	"github.com/rocketscienceinc/mastermind/internal/service"
	"github.com/rocketscienceinc/mastermind/transport/rest"
	"github.com/rocketscienceinc/mastermind/transport/restclient"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	conf, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	conf.NoColor = true

	return conf
}

type fixedGenerator entity.Code

func (that fixedGenerator) Generate(_ entity.Rules) entity.Code {
	return entity.Code(that).Clone()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunLocal_QuitRevealsSecret(t *testing.T) {
	// Given: a local game where the player gives up right away
	var out bytes.Buffer
	console := Console{In: strings.NewReader("EXIT\n"), Out: &out}

	// When: the session runs
	err := RunLocal(context.Background(), discardLogger(), testConfig(t), console)

	// Then: the game ends and the secret is shown
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Game over. The code was ")
}

func TestRunRemote(t *testing.T) {
	t.Run("Malformed endpoint", func(t *testing.T) {
		var out bytes.Buffer

		err := RunRemote(context.Background(), discardLogger(), testConfig(t), "not a url", Console{In: strings.NewReader(""), Out: &out})

		require.ErrorIs(t, err, restclient.ErrMalformedEndpoint)
	})

	t.Run("Plays against a running service", func(t *testing.T) {
		// Given: an authority service holding the secret 3416
		logger := discardLogger()
		gameService := service.NewGameService(logger, entity.DefaultRules(), fixedGenerator{3, 4, 1, 6}, repository.NewMemorySessionRepository())
		srv := httptest.NewServer(rest.New(logger, gameService, prometheus.NewRegistry()).Handler())
		t.Cleanup(srv.Close)

		var out bytes.Buffer
		console := Console{In: strings.NewReader("1234\nexit\n"), Out: &out}

		// When: the player makes one guess and quits
		err := RunRemote(context.Background(), logger, testConfig(t), srv.URL, console)

		// Then: one feedback line is shown and the secret stays hidden
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Black: 0  White: 3")
		assert.Contains(t, out.String(), "Game over.\n")
	})

	t.Run("Unreachable service fails to start", func(t *testing.T) {
		srv := httptest.NewServer(nil)
		srv.Close()

		var out bytes.Buffer
		err := RunRemote(context.Background(), discardLogger(), testConfig(t), srv.URL, Console{In: strings.NewReader("1234\n"), Out: &out})

		require.ErrorIs(t, err, restclient.ErrRequestFailed)
		assert.Contains(t, out.String(), "Could not start a game")
	})
}

func TestNewSessionRepository_Memory(t *testing.T) {
	conf := testConfig(t)

	sessionRepo, closeRepo, err := newSessionRepository(context.Background(), discardLogger(), conf)
	require.NoError(t, err)
	defer closeRepo()

	ctx := context.Background()
	require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("1", entity.Code{1, 2, 3, 4})))

	_, err = sessionRepo.GetByID(ctx, "1")
	require.NoError(t, err)
}
