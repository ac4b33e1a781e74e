package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

const defaultHours = 24

type Server struct {
	svc    *application.PriceService
	assets []domain.Asset
	ping   func(context.Context) error
}

type ServerOption func(*Server)

// WithPing wires the store's health probe into /readyz.
func WithPing(ping func(context.Context) error) ServerOption {
	return func(s *Server) { s.ping = ping }
}

func NewServer(svc *application.PriceService, assets []domain.Asset, opts ...ServerOption) *Server {
	s := &Server{svc: svc, assets: assets}
	if len(s.assets) == 0 {
		s.assets = domain.DefaultAssets()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type sampleDTO struct {
	Asset        string    `json:"asset"`
	PriceUSD     float64   `json:"price_usd"`
	MarketCapUSD float64   `json:"market_cap_usd"`
	VolumeUSD    float64   `json:"volume_usd"`
	CapturedAt   time.Time `json:"captured_at"`
}

type latestResponse struct {
	Latest []sampleDTO `json:"latest"`
}

type seriesDTO struct {
	Asset   string      `json:"asset"`
	Samples []sampleDTO `json:"samples"`
}

type historyResponse struct {
	Hours  int         `json:"hours"`
	Series []seriesDTO `json:"series"`
}

type summaryDTO struct {
	Asset         string    `json:"asset"`
	CurrentPrice  float64   `json:"current_price"`
	PercentChange float64   `json:"percent_change"`
	MaxPrice      float64   `json:"max_price"`
	MinPrice      float64   `json:"min_price"`
	MeanVolume    float64   `json:"mean_volume"`
	SampleCount   int       `json:"sample_count"`
	FirstAt       time.Time `json:"first_at"`
	LastAt        time.Time `json:"last_at"`
}

type summaryResponse struct {
	Hours     int          `json:"hours"`
	Summaries []summaryDTO `json:"summaries"`
}

type statusResponse struct {
	Samples int64    `json:"samples"`
	Assets  []string `json:"assets"`
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := s.svc.LatestPrices(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	out := make([]sampleDTO, 0, len(latest))
	for _, sm := range sortedSamples(latest) {
		out = append(out, toSampleDTO(sm))
	}
	writeJSON(w, http.StatusOK, latestResponse{Latest: out})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	hours, ok := hoursParam(w, r)
	if !ok {
		return
	}
	history, err := s.svc.History(r.Context(), s.svc.Since(hours))
	if err != nil {
		internalError(w)
		return
	}
	series := make([]seriesDTO, 0, len(history))
	for _, asset := range orderedAssets(s.assets, history) {
		samples := history[asset]
		dto := seriesDTO{Asset: string(asset), Samples: make([]sampleDTO, 0, len(samples))}
		for _, sm := range samples {
			dto.Samples = append(dto.Samples, toSampleDTO(sm))
		}
		series = append(series, dto)
	}
	writeJSON(w, http.StatusOK, historyResponse{Hours: hours, Series: series})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	hours, ok := hoursParam(w, r)
	if !ok {
		return
	}
	sums, err := s.svc.Summaries(r.Context(), s.svc.Since(hours), s.assets)
	if err != nil {
		internalError(w)
		return
	}
	out := make([]summaryDTO, 0, len(sums))
	for _, sum := range sums {
		out = append(out, summaryDTO{
			Asset:         string(sum.Asset),
			CurrentPrice:  sum.CurrentPrice,
			PercentChange: sum.PercentChange,
			MaxPrice:      sum.MaxPrice,
			MinPrice:      sum.MinPrice,
			MeanVolume:    sum.MeanVolume,
			SampleCount:   sum.SampleCount,
			FirstAt:       sum.FirstAt,
			LastAt:        sum.LastAt,
		})
	}
	writeJSON(w, http.StatusOK, summaryResponse{Hours: hours, Summaries: out})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.SampleCount(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	assets := make([]string, 0, len(s.assets))
	for _, a := range s.assets {
		assets = append(assets, string(a))
	}
	writeJSON(w, http.StatusOK, statusResponse{Samples: n, Assets: assets})
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dashboardHTML))
}

// hoursParam reads the lookback window, defaulting to 24. On a bad value it
// writes the 400 itself and reports false.
func hoursParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("hours")
	if raw == "" {
		return defaultHours, true
	}
	h, err := strconv.Atoi(raw)
	if err != nil || h <= 0 {
		writeError(w, http.StatusBadRequest, "hours must be a positive integer")
		return 0, false
	}
	return h, true
}

func toSampleDTO(s domain.Sample) sampleDTO {
	return sampleDTO{
		Asset:        string(s.Asset),
		PriceUSD:     s.PriceUSD,
		MarketCapUSD: s.MarketCapUSD,
		VolumeUSD:    s.VolumeUSD,
		CapturedAt:   s.CapturedAt,
	}
}

func sortedSamples(m map[domain.Asset]domain.Sample) []domain.Sample {
	out := make([]domain.Sample, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// orderedAssets lists the configured assets first, in configured order, then
// any extra assets found in the store.
func orderedAssets(configured []domain.Asset, history map[domain.Asset][]domain.Sample) []domain.Asset {
	out := make([]domain.Asset, 0, len(history))
	seen := make(map[domain.Asset]bool, len(history))
	for _, a := range configured {
		if _, ok := history[a]; ok {
			out = append(out, a)
			seen[a] = true
		}
	}
	extra := make([]domain.Asset, 0)
	for a := range history {
		if !seen[a] {
			extra = append(extra, a)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
