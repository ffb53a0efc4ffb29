// Package http exposes the assistant's tools as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"

	"gullak/internal/gold"
	"gullak/internal/llm"
	"gullak/internal/middleware/ratelimit"
	"gullak/internal/middleware/security"
	"gullak/internal/middleware/trace"
	"gullak/internal/news"
	"gullak/internal/ppp"
	"gullak/internal/services"
)

// Deps carries the collaborators a Server needs. LLM may be nil when no
// API key is configured; the chat endpoints degrade instead of failing
// startup.
type Deps struct {
	Commands *services.CommandService
	LLM      llm.Caller
	News     *news.Fetcher
	Gold     *gold.Client
	PPP      *ppp.Table

	AuthToken   string
	OwnerNumber string
	NewsLimit   int

	RequestsPerMinute int
}

type Server struct {
	http.Server

	commands *services.CommandService
	llm      llm.Caller
	news     *news.Fetcher
	gold     *gold.Client
	ppp      *ppp.Table

	authToken   string
	ownerNumber string
	newsLimit   int

	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		commands:    deps.Commands,
		llm:         deps.LLM,
		news:        deps.News,
		gold:        deps.Gold,
		ppp:         deps.PPP,
		authToken:   deps.AuthToken,
		ownerNumber: deps.OwnerNumber,
		newsLimit:   deps.NewsLimit,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: deps.RequestsPerMinute,
		}),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /validate", s.handleValidate)

	// Tool endpoints require the bearer token.
	mux.Handle("POST /v1/command", s.requireAuth(s.handleCommand))
	mux.Handle("POST /v1/qa", s.requireAuth(s.handleQA))
	mux.Handle("POST /v1/news/simplify", s.requireAuth(s.handleNewsSimplify))
	mux.Handle("GET /v1/news", s.requireAuth(s.handleNews))
	mux.Handle("GET /v1/gold", s.requireAuth(s.handleGold))
	mux.Handle("GET /v1/ppp", s.requireAuth(s.handlePPP))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(trace.ExtractClientIP)(mux)

	s.Server = http.Server{
		Addr:    addr,
		Handler: headers.Middleware(trace.Middleware(limited)),
	}
	return s
}

// Shutdown stops background routines before closing the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
