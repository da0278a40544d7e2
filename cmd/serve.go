package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/staffnote/db"
	"github.com/jsphweid/staffnote/diag"
	"github.com/jsphweid/staffnote/model"
	"github.com/jsphweid/staffnote/note"
	"github.com/jsphweid/staffnote/sample"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on, overrides server.addr")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves rendered notes over HTTP",
	Long: `Serves rendered notes over HTTP.

  POST /render          {"notes": [{"pitch": 3, "duration": "quarter"}], "format": "svg"}
  GET  /random          a random note, ?format=png for png
  GET  /renderings/{id} an archived rendering (needs archive.enabled)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// Server answers render requests. Renderings are archived when it has an
// archive.
type Server struct {
	renderer *note.Renderer
	archive  db.Archive

	mu  sync.Mutex
	rng *rand.Rand
}

func NewServer(renderer *note.Renderer, archive db.Archive) *Server {
	return &Server{
		renderer: renderer,
		archive:  archive,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", s.HandleRender).Methods("POST")
	router.HandleFunc("/random", s.HandleRandom).Methods("GET")
	router.HandleFunc("/renderings/{id}", s.HandleRendering).Methods("GET")
	return router
}

func writeError(w http.ResponseWriter, status int, detail string, problems []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail, Problems: problems})
}

func (s *Server) HandleRender(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error(), nil)
		return
	}

	var input model.RenderRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error(), nil)
		return
	}
	if len(input.Notes) != 1 && len(input.Notes) != 2 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Expected 1 note or 2 eighth notes, got %d", len(input.Notes)), nil)
		return
	}
	if err := checkFormat(input.Format); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	s.respond(w, r, input.Notes, input.Format)
}

func (s *Server) HandleRandom(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if err := checkFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	s.mu.Lock()
	notes := sample.Random(s.rng)
	s.mu.Unlock()

	s.respond(w, r, notes, format)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, notes []note.Descriptor, format string) {
	img, err := s.renderer.RenderAll(notes)
	var verr *note.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, "Could not render notes", verr.Problems)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var buf bytes.Buffer
	if err := encodeImage(&buf, img, format, 0); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	id := uuid.New().String()
	if s.archive != nil {
		rendering := db.Rendering{ID: id, Notes: notes, SVG: img.SVG(), Created: time.Now().UTC()}
		// the image is still good without its archive copy
		if err := s.archive.Put(r.Context(), rendering); err != nil {
			log.Printf("Could not archive rendering: %v", err)
		}
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Render-Id", id)
	w.Write(buf.Bytes())
}

func (s *Server) HandleRendering(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusNotFound, "Archive is not enabled", nil)
		return
	}

	id := mux.Vars(r)["id"]
	rendering, err := s.archive.Get(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No rendering with id "+id, nil)
		return
	}
	if err != nil {
		log.Printf("Could not load rendering %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Could not load rendering", nil)
		return
	}

	w.Header().Set("Content-Type", contentType(formatSVG))
	w.Header().Set("X-Render-Id", rendering.ID)
	w.Write(rendering.SVG)
}

func serve() error {
	sink := diag.NewDebounced(diag.NewLogSink(), cfg.Diag.QuietPeriod)
	defer sink.Flush()

	var archive db.Archive
	if cfg.Archive.Enabled {
		a, err := db.NewDynamoArchive(cfg.Archive)
		if err != nil {
			return err
		}
		archive = a
	}

	server := NewServer(note.NewRenderer(cfg.Layout, sink), archive)
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"X-Render-Id"},
	}).Handler(server.Router())

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	log.Printf("Listening on %s", addr)
	return http.ListenAndServe(addr, handler)
}
