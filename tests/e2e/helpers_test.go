//go:build e2e

package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/rastreio-bot/internal/adapter/natsbus"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/conversation"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/interaction"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/message"
	reportrepo "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/report"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/systemlog"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/trackinglog"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/ssw"
	"github.com/heartmarshall/rastreio-bot/internal/auth"
	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/metrics"
	"github.com/heartmarshall/rastreio-bot/internal/service/chatbot"
	"github.com/heartmarshall/rastreio-bot/internal/service/housekeeping"
	"github.com/heartmarshall/rastreio-bot/internal/service/report"
	"github.com/heartmarshall/rastreio-bot/internal/transport/middleware"
	"github.com/heartmarshall/rastreio-bot/internal/transport/rest"
)

const (
	jwtSecret      = "e2e-secret-at-least-32-characters-long"
	jwtIssuer      = "rastreio-bot"
	operatorNumber = "5541988887777"
	replyTimeout   = 10 * time.Second
)

// sswDanfeBody is what the fake SSW API answers for every DANFE lookup.
const sswDanfeBody = `{
  "success": true,
  "documentos": [{
    "header": {"remetente": "ACME LTDA", "destinatario": "FULANO", "nro_nf": "8399", "pedido": "P1"},
    "tracking": [
      {"data_hora_efetiva": "01/03/24 10:00", "cidade": "SAO PAULO", "tipo": "Coleta", "ocorrencia": "COLETADO"},
      {"data_hora_efetiva": "02/03/24 08:00", "cidade": "CURITIBA", "tipo": "Transferencia", "ocorrencia": "EM TRANSITO"}
    ]
  }]
}`

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// testStack is the full application wired against a PostgreSQL container,
// an embedded NATS server and a fake SSW API.
type testStack struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	NATS   *nats.Conn
	HK     *housekeeping.Service
	jwt    *auth.JWTManager
}

func setupStack(t *testing.T) *testStack {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Chat transport.
	ns, err := server.NewServer(&server.Options{Port: -1, NoLog: true, NoSigs: true})
	require.NoError(t, err)
	go ns.Start()
	require.True(t, ns.ReadyForConnections(5*time.Second), "nats server did not start")
	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	natsCfg := config.NATSConfig{
		URL:             ns.ClientURL(),
		InboundSubject:  "chat.inbound",
		OutboundSubject: "chat.outbound",
		QueueGroup:      "rastreio-bot",
		ConnectTimeout:  time.Second,
		ConnectAttempts: 1,
	}
	bus, err := natsbus.Connect(context.Background(), logger, natsCfg)
	require.NoError(t, err)

	// Fake SSW API.
	ssws := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/trackingdanfe") {
			_, _ = io.WriteString(w, sswDanfeBody)
			return
		}
		_, _ = io.WriteString(w, `{"success": false, "message": "Nenhum documento localizado"}`)
	}))
	t.Cleanup(ssws.Close)

	botCfg := config.BotConfig{
		OperatorIdentity: operatorNumber,
		BotIdentity:      "5541933332222",
		CountryCode:      "55",
		Timezone:         "UTC",
		IdleWindow:       5 * time.Minute,
		TurnTimeout:      8 * time.Second,
		HistoryLimit:     10,
		Location:         time.UTC,
	}

	// Repositories.
	txm := postgres.NewTxManager(pool)
	conversations := conversation.New(pool)
	messages := message.New(pool)
	lookups := trackinglog.New(pool)
	interactions := interaction.New(pool)
	syslog := systemlog.New(pool)

	// Services.
	m := metrics.New()
	gateway := ssw.New(logger, config.TrackingConfig{BaseURL: ssws.URL + "/api/", Domain: "TES", Timeout: 5 * time.Second})
	bot := chatbot.NewService(logger, conversations, messages, lookups, interactions, syslog, gateway, bus, m, botCfg)
	hk := housekeeping.NewService(logger, conversations, messages, interactions, syslog, txm, m, botCfg.IdleWindow,
		config.HousekeepingConfig{InactivityWindow: 10 * time.Minute, RetentionDays: 90})
	reportSvc := report.NewService(logger, reportrepo.New(pool), conversations, messages, lookups, syslog, time.UTC)

	require.NoError(t, bus.Subscribe(context.Background(), func(ctx context.Context, ev domain.InboundEvent) {
		bot.HandleEvent(ctx, ev)
	}))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = bus.Close(ctx)
	})

	// HTTP.
	jwtMgr := auth.NewJWTManager(jwtSecret, jwtIssuer)
	handler := rest.NewRouter(rest.RouterDeps{
		Logger: logger,
		Health: rest.NewHealthHandler("e2e",
			rest.Component{Name: "database", Pinger: pool, Critical: true},
			rest.Component{Name: "chat_transport", Pinger: bus, Critical: true},
		),
		Dashboard: rest.NewDashboardHandler(reportSvc, logger),
		Metrics:   m,
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,OPTIONS", MaxAge: 60},
		Auth:      middleware.Auth(jwtMgr),
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return &testStack{
		URL:    ts.URL,
		Client: ts.Client(),
		Pool:   pool,
		NATS:   client,
		HK:     hk,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// Chat helpers.
// ---------------------------------------------------------------------------

// phone is a customer talking to the bot over the chat transport.
type phone struct {
	t        *testing.T
	stack    *testStack
	identity string
	inbox    chan *nats.Msg
}

func (s *testStack) newPhone(t *testing.T, identity string) *phone {
	t.Helper()

	inbox := make(chan *nats.Msg, 64)
	sub, err := s.NATS.ChanSubscribe("chat.outbound", inbox)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })
	require.NoError(t, s.NATS.Flush())

	return &phone{t: t, stack: s, identity: identity, inbox: inbox}
}

// send publishes text as an inbound chat event from this phone.
func (p *phone) send(text string) {
	p.t.Helper()

	data, err := json.Marshal(domain.InboundEvent{
		Sender: domain.TransportAddress(p.identity),
		Text:   text,
		Kind:   "notify",
	})
	require.NoError(p.t, err)
	require.NoError(p.t, p.stack.NATS.Publish("chat.inbound", data))
	require.NoError(p.t, p.stack.NATS.Flush())
}

// expect reads replies addressed to this phone until one contains want.
func (p *phone) expect(want string) string {
	p.t.Helper()

	addr := domain.TransportAddress(p.identity)
	deadline := time.After(replyTimeout)
	for {
		select {
		case msg := <-p.inbox:
			var out natsbus.OutboundMessage
			require.NoError(p.t, json.Unmarshal(msg.Data, &out))
			if out.To == addr && strings.Contains(out.Text, want) {
				return out.Text
			}
		case <-deadline:
			p.t.Fatalf("no reply containing %q within %s", want, replyTimeout)
			return ""
		}
	}
}

// say sends text and waits for a reply containing want.
func (p *phone) say(text, want string) string {
	p.t.Helper()
	p.send(text)
	return p.expect(want)
}

// ---------------------------------------------------------------------------
// Dashboard helpers.
// ---------------------------------------------------------------------------

func (s *testStack) token(t *testing.T) string {
	t.Helper()
	token, err := s.jwt.GenerateToken("e2e", time.Hour)
	require.NoError(t, err)
	return token
}

// getJSON performs an authenticated GET and decodes the body into out.
func (s *testStack) getJSON(t *testing.T, path string, out any) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, s.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+s.token(t))

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// conversationID returns the id of the newest conversation for identity.
func (s *testStack) conversationID(t *testing.T, identity string) int64 {
	t.Helper()

	var id int64
	err := s.Pool.QueryRow(context.Background(),
		`SELECT id FROM conversations WHERE identity = $1 ORDER BY id DESC LIMIT 1`, identity,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
