// Package webapi serves the annotation pipeline over HTTP. Models are
// loaded once at startup into a process-wide registry; request handlers
// only ever read them.
package webapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"sema/nlp/model"
	"sema/nlp/pipeline"
	nlp "sema/nlp/types"
	"sema/util"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Addr      string  `yaml:"addr"`
	POSModel  string  `yaml:"pos_model"`
	DepModel  string  `yaml:"dep_model"`
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

func DefaultConfig() Config {
	return Config{
		Addr:      ":8957",
		POSModel:  "pos.model",
		DepModel:  "dep.model",
		RateLimit: 50,
		RateBurst: 100,
	}
}

func ReadConfigFile(filename string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}
	return config, nil
}

type Server struct {
	config   Config
	pipeline *pipeline.Pipeline
	models   *cache.Cache
	limiter  *rate.Limiter
}

// loadModel reads a model through the process-wide registry, so a path is
// decoded exactly once regardless of how many components ask for it.
func (s *Server) loadModel(filename string, expected model.ModelType) (*model.Model, error) {
	if cached, found := s.models.Get(filename); found {
		return cached.(*model.Model), nil
	}
	location, found := util.LocateFile(filename, []string{".", "data", "models"})
	if !found {
		return nil, fmt.Errorf("model file %s not found", filename)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, err
	}
	var m *model.Model
	if len(data) >= len(model.Magic) && string(data[:len(model.Magic)]) == model.Magic {
		m, err = model.LoadTyped(data, expected)
	} else {
		m, err = model.LoadStructured(data)
	}
	if err != nil {
		return nil, err
	}
	s.models.Set(filename, m, cache.NoExpiration)
	return m, nil
}

func NewServer(config Config) (*Server, error) {
	s := &Server{
		config:  config,
		models:  cache.New(cache.NoExpiration, 0),
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}
	log.Println("Loading POS model from", config.POSModel)
	posModel, err := s.loadModel(config.POSModel, model.ModelTypePOS)
	if err != nil {
		return nil, err
	}
	log.Println("Loading dependency model from", config.DepModel)
	depModel, err := s.loadModel(config.DepModel, model.ModelTypeDep)
	if err != nil {
		return nil, err
	}
	s.pipeline, err = pipeline.New(posModel, depModel)
	if err != nil {
		return nil, err
	}
	log.Println("Models loaded")
	return s, nil
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.throttle)
	router.HandleFunc("/tag", s.handleTag).Methods("POST")
	router.HandleFunc("/parse", s.handleParse).Methods("POST")
	router.HandleFunc("/pipeline", s.handlePipeline).Methods("POST")
	router.HandleFunc("/models", s.handleModels).Methods("GET")
	return router
}

func (s *Server) ListenAndServe() error {
	log.Println("Listening on", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.Router())
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type tagRequest struct {
	Tokens []string `json:"tokens"`
}

type tagResponse struct {
	Tags  []string    `json:"tags"`
	Pairs [][2]string `json:"pairs"`
}

type parseRequest struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"tags"`
}

type arcJSON struct {
	Modifier int    `json:"modifier"`
	Head     int    `json:"head"`
	Label    string `json:"label"`
}

type parseResponse struct {
	Arcs []arcJSON `json:"arcs"`
	Root int       `json:"root"`
}

type scoreJSON struct {
	Transition string  `json:"transition"`
	Margin     float64 `json:"margin"`
	Confidence float64 `json:"confidence"`
}

type pipelineResponse struct {
	Pairs  [][2]string `json:"pairs"`
	Arcs   []arcJSON   `json:"arcs"`
	Root   int         `json:"root"`
	Scores []scoreJSON `json:"scores"`
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pairs := s.pipeline.Tagger.TagFormatted(req.Tokens)
	resp := tagResponse{
		Tags:  make([]string, len(pairs)),
		Pairs: make([][2]string, len(pairs)),
	}
	for i, pair := range pairs {
		resp.Tags[i] = pair.POS
		resp.Pairs[i] = [2]string{pair.Token, pair.POS}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tree, err := s.pipeline.Parser.Parse(req.Tokens, req.Tags)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	resp := parseResponse{Arcs: arcsOf(tree), Root: tree.Root()}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	annotated, err := s.pipeline.Annotate(req.Tokens)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	resp := pipelineResponse{
		Pairs:  make([][2]string, len(annotated.Pairs)),
		Arcs:   arcsOf(annotated.Tree),
		Root:   annotated.Tree.Root(),
		Scores: make([]scoreJSON, len(annotated.Scores)),
	}
	for i, pair := range annotated.Pairs {
		resp.Pairs[i] = [2]string{pair.Token, pair.POS}
	}
	for i, score := range annotated.Scores {
		resp.Scores[i] = scoreJSON{score.Transition, score.Margin, score.Confidence}
	}
	writeJSON(w, http.StatusOK, resp)
}

type modelInfo struct {
	Type       string           `json:"type"`
	Labels     int              `json:"labels"`
	Features   int              `json:"features"`
	Dictionary int              `json:"dictionary"`
	Provenance model.Provenance `json:"provenance"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	posModel := s.pipeline.Tagger.Model()
	depModel := s.pipeline.Parser.Model
	writeJSON(w, http.StatusOK, map[string]modelInfo{
		"pos": {
			Type:       model.ModelTypePOS.String(),
			Labels:     len(posModel.Labels),
			Features:   len(posModel.Weights),
			Dictionary: len(posModel.Dictionary),
			Provenance: posModel.Provenance,
		},
		"dependency": {
			Type:       model.ModelTypeDep.String(),
			Labels:     len(depModel.Labels),
			Features:   len(depModel.Weights),
			Dictionary: len(depModel.Dictionary),
			Provenance: depModel.Provenance,
		},
	})
}

func arcsOf(tree *nlp.DependencyTree) []arcJSON {
	arcs := make([]arcJSON, len(tree.Arcs))
	for i, arc := range tree.Arcs {
		arcs[i] = arcJSON{Modifier: arc.Modifier, Head: arc.Head, Label: string(arc.Relation)}
	}
	return arcs
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Failed writing response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := map[string]string{"error": err.Error()}
	if reason := model.ReasonOf(err); reason != "" {
		body["reason"] = reason
	}
	writeJSON(w, status, body)
}
