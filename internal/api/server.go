// Package api exposes the damages engine and rate lookups over HTTP.
package api

import (
	"errors"
	"net"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
)

const contentTypeJSON = "application/json"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
}

// PJIRequest is the body of POST /calculate-pji. Amount accepts a JSON
// number or a free-form string such as "12,500".
type PJIRequest struct {
	LossDate        string     `json:"loss_date"`
	CalculationDate string     `json:"calculation_date"`
	Amount          flexString `json:"amount"`
}

// flexString decodes either a JSON string or a bare literal.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(b)
	return nil
}

// Server routes requests to the damages engine.
type Server struct {
	Engine *calculation.DamagesEngine
	// Rates backs the rate lookup endpoint; nil answers with the default rate.
	Rates  calculation.RateSource
	Parser *config.InputParser
	Logger calculation.Logger
	Now    func() time.Time
}

// NewServer creates a server over engine. The engine's rate source is
// reused for the lookup endpoints.
func NewServer(engine *calculation.DamagesEngine) *Server {
	return &Server{
		Engine: engine,
		Rates:  engine.PJI.Rates,
		Parser: config.NewInputParser(),
		Logger: calculation.NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger sets the logger; nil selects the no-op logger.
func (s *Server) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.Logger = l
}

func (s *Server) newHTTPServer() *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "actuclaim",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.Logger.Infof("API listening on %s", addr)
	return s.newHTTPServer().ListenAndServe(addr)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.newHTTPServer().Serve(ln)
}

// Handler returns the request router.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		s.Logger.Debugf("%s %s", ctx.Method(), path)

		switch path {
		case "/calculate":
			if !ctx.IsPost() {
				s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			s.handleCalculate(ctx)
		case "/calculate-pji":
			if !ctx.IsPost() {
				s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			s.handleCalculatePJI(ctx)
		case "/api/tbill-rate":
			if !ctx.IsGet() {
				s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			s.handleRate(ctx)
		case "/healthz":
			s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		default:
			s.writeError(ctx, fasthttp.StatusNotFound, "Not found")
		}
	}
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	var in domain.CaseInput
	if err := json.Unmarshal(ctx.PostBody(), &in); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.Parser.ValidateCase(&in); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	result, err := s.Engine.Calculate(in)
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownJurisdiction) {
			status = fasthttp.StatusBadRequest
		}
		s.Logger.Errorf("calculation failed: %v", err)
		s.writeError(ctx, status, err.Error())
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleCalculatePJI(ctx *fasthttp.RequestCtx) {
	var req PJIRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.LossDate) == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Loss date is required")
		return
	}
	loss, ok := dateutil.Parse(req.LossDate)
	if !ok {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid loss date: "+req.LossDate)
		return
	}
	calcDate := dateutil.Day(s.Now())
	if strings.TrimSpace(req.CalculationDate) != "" {
		if calcDate, ok = dateutil.Parse(req.CalculationDate); !ok {
			s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid calculation date: "+req.CalculationDate)
			return
		}
	}

	result := s.Engine.PJI.CalculateSimple(money.Parse(string(req.Amount)), loss, calcDate)
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleRate(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	startArg := firstArg(args, "start_date", "start")
	if startArg == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Start date is required")
		return
	}
	start, ok := dateutil.Parse(startArg)
	if !ok {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid start date: "+startArg)
		return
	}
	end := dateutil.Day(s.Now())
	if endArg := firstArg(args, "end_date", "end"); endArg != "" {
		if end, ok = dateutil.Parse(endArg); !ok {
			s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid end date: "+endArg)
			return
		}
	}
	if end.Before(start) {
		s.writeError(ctx, fasthttp.StatusBadRequest, "End date is before start date")
		return
	}

	if s.Rates == nil {
		s.writeJSON(ctx, fasthttp.StatusOK, domain.RateLookup{
			Rate: calculation.DefaultPJIRatePercent, Start: start, End: end, Fallback: true, Source: "default",
		})
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.Rates.AverageRate(start, end))
}

func firstArg(args *fasthttp.Args, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(string(args.Peek(k))); v != "" {
			return v
		}
	}
	return ""
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		s.Logger.Errorf("failed to encode response: %v", err)
		ctx.Error(`{"status":500,"error":"failed to encode response"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType(contentTypeJSON)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}
