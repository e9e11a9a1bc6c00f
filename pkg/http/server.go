// Package http exposes the bot's two inbound webhook endpoints:
// Slack slash commands and interaction payloads.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/practicehq/satbot/pkg/questions"
	"github.com/practicehq/satbot/pkg/slack"
	"github.com/practicehq/satbot/pkg/thrippy"
)

const (
	readTimeout = 3 * time.Second
	// Interaction handlers make one Slack API call before responding.
	writeTimeout = 15 * time.Second

	maxBodySize = 1 << 20 // 1 MiB.

	// loadingText is the synchronous slash-command acknowledgment. Slack
	// enforces a short response deadline, so the real work is detached.
	loadingText = "Loading your SAT question..."
)

type httpServer struct {
	port             int
	requireSignature bool
	signingSecret    string
	dispatcher       *slack.Dispatcher
}

func newHTTPServer(ctx context.Context, cmd *cli.Command) (*httpServer, error) {
	cfg := slack.Config{
		BotToken:      cmd.String("slack-bot-token"),
		SigningSecret: cmd.String("slack-signing-secret"),
	}

	// A Thrippy link, when configured, is the authoritative secrets source.
	if addr := cmd.String("thrippy-server-addr"); addr != "" {
		secrets, err := thrippy.LinkSecrets(ctx, addr, thrippy.SecureCreds(cmd), cmd.String("thrippy-link-id"))
		if err != nil {
			return nil, err
		}
		if secrets == nil {
			return nil, errors.New("thrippy link not found")
		}
		if v := secrets["bot_token"]; v != "" {
			cfg.BotToken = v
		}
		if v := secrets["signing_secret"]; v != "" {
			cfg.SigningSecret = v
		}
	}

	requireSignature := cmd.Bool("require-signature")
	if !requireSignature {
		log.Warn().Msg("signature verification is disabled - every inbound request is trusted")
	}

	api := slack.NewClient(cfg)
	src := questions.NewClient(cmd.String("question-api-url"))

	return &httpServer{
		port:             cmd.Int("http-port"),
		requireSignature: requireSignature,
		signingSecret:    cfg.SigningSecret,
		dispatcher:       slack.NewDispatcher(api, src),
	}, nil
}

// run starts the HTTP server on the local loopback interface.
// This is blocking, to keep the bot running.
func (s *httpServer) run() error {
	server := &http.Server{
		Addr:         net.JoinHostPort("127.0.0.1", strconv.Itoa(s.port)),
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	log.Info().Msgf("HTTP server listening on %s", server.Addr)
	err := server.ListenAndServe()
	if err != nil {
		log.Err(err).Send()
		return err
	}

	return nil
}

func (s *httpServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/commands", s.slashCommandHandler)
	mux.HandleFunc("POST /slack/interactions", s.interactionHandler)
	return mux
}

// slashCommandHandler acknowledges a slash command immediately with a
// transient loading message, and detaches the actual fulfillment into a
// fire-and-forget task. Fulfillment failures are logged and terminal:
// at-most-once, best-effort delivery.
func (s *httpServer) slashCommandHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	l := log.With().Str("http_method", r.Method).Str("url_path", r.URL.EscapedPath()).Logger()
	l.Info().Msg("received HTTP request")

	form, ok := s.readForm(w, r, l)
	if !ok {
		return
	}

	cmd := slack.SlashCommand{
		ChannelID:   form.Get("channel_id"),
		ResponseURL: form.Get("response_url"),
	}

	tl := l.With().Str("task_id", shortuuid.New()).Str("channel_id", cmd.ChannelID).Logger()
	go func() {
		// Detached from the request context: the task outlives the
		// synchronous acknowledgment below.
		ctx := tl.WithContext(context.Background())
		if err := s.dispatcher.FulfillSlashCommand(ctx, cmd); err != nil {
			tl.Err(err).Msg("slash command fulfillment failed")
			return
		}
		tl.Info().Msg("question posted")
	}()

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(loadingText))
}

// interactionHandler decodes a button-interaction webhook and hands it to
// the dispatcher, which performs at most one outbound action before the
// response is written.
func (s *httpServer) interactionHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	l := log.With().Str("http_method", r.Method).Str("url_path", r.URL.EscapedPath()).Logger()
	l.Info().Msg("received HTTP request")

	form, ok := s.readForm(w, r, l)
	if !ok {
		return
	}

	payload := form.Get("payload")
	if payload == "" {
		l.Warn().Msg("bad request: no payload in interaction")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var event slack.Interaction
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		l.Warn().Err(err).Msg("bad request: malformed interaction payload")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := l.WithContext(r.Context())
	if code := s.dispatcher.HandleInteraction(ctx, event); code != http.StatusOK {
		w.WriteHeader(code)
	}
}

// readForm reads the raw request body, verifies its Slack signature when
// verification is enabled, and then parses it as a web form. Verification
// must see the raw bytes: re-encoding a parsed form does not round-trip.
func (s *httpServer) readForm(w http.ResponseWriter, r *http.Request, l zerolog.Logger) (url.Values, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		l.Warn().Err(err).Msg("failed to read request body")
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	if s.requireSignature {
		if code := slack.CheckRequest(l, s.signingSecret, r.Header, body); code != http.StatusOK {
			w.WriteHeader(code)
			return nil, false
		}
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		l.Warn().Err(err).Msg("bad request: malformed form body")
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	return form, true
}
