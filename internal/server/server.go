// Package server exposes the party calculator over HTTP: the configurator
// page, the game-data files it reads, the calc endpoint that forwards
// normalized parties to the damage engine, and the share-URL state endpoints.
package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/ushigai/LuckyDefense-tools/internal/gamedata"
	"github.com/ushigai/LuckyDefense-tools/internal/party"
)

//go:embed static
var staticFS embed.FS

// Calculator is the damage engine the server forwards parties to.
type Calculator interface {
	Calc(ctx context.Context, req party.CalcRequest) (party.CalcResult, error)
}

type Server struct {
	log     *zap.Logger
	db      *gamedata.DB
	engine  Calculator
	public  url.URL
	dataDir string
}

func New(log *zap.Logger, db *gamedata.DB, eng Calculator, publicURL url.URL, dataDir string) *Server {
	return &Server{log: log, db: db, engine: eng, public: publicURL, dataDir: dataDir}
}

// Routes builds the full handler tree, wrapped with request-id and access
// logging middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/calc", s.handleCalc)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/share", s.handleShare)

	mux.Handle("GET /data/", http.StripPrefix("/data/", http.FileServer(http.Dir(s.dataDir))))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	return s.withRequestID(s.withAccessLog(mux))
}
