package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"importintel/internal/eligibility"
	"importintel/internal/intelligence"
	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
)

type fakeService struct {
	lastQuery string
	lastReq   intelligence.Request
	err       error
}

func (f *fakeService) Assemble(_ context.Context, query string, req intelligence.Request) (intelligence.Intelligence, error) {
	f.lastQuery = query
	f.lastReq = req
	if f.err != nil {
		return intelligence.Intelligence{}, f.err
	}
	return intelligence.Intelligence{
		Vehicle: resolver.VehicleIdentity{
			Make: "Toyota", Model: "Supra", ManufactureYear: 1993,
		},
		DestinationCountry: req.DestinationCountry,
		Eligibility:        eligibility.Result{Eligible: true, RuleApplied: "aus-25-year"},
		TimelineWeeks:      14,
	}, nil
}

type HandlerSuite struct {
	suite.Suite
	service *fakeService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &fakeService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(s.service, logger, nil)
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *HandlerSuite) post(body any) *httptest.ResponseRecorder {
	encoded, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/v1/intelligence", bytes.NewReader(encoded))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestHandleIntelligence() {
	w := s.post(IntelligenceRequest{
		Query:              " jza80 ",
		DestinationCountry: "Australia",
		DeclaredPrice:      decimal.NewFromInt(40000),
	})
	s.Equal(http.StatusOK, w.Code)

	var resp intelligence.Intelligence
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Eligibility.Eligible)
	s.Equal("Australia", resp.DestinationCountry)

	s.Equal("jza80", s.service.lastQuery, "query should be trimmed")
	s.Equal(eligibility.CategoryPassenger, s.service.lastReq.Category, "category defaults to passenger")
}

func (s *HandlerSuite) TestValidation() {
	s.Run("missing query", func() {
		w := s.post(IntelligenceRequest{DestinationCountry: "Australia"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing destination", func() {
		w := s.post(IntelligenceRequest{Query: "jza80"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown category", func() {
		w := s.post(IntelligenceRequest{
			Query: "jza80", DestinationCountry: "Australia", Category: "hovercraft",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("negative declared price", func() {
		w := s.post(IntelligenceRequest{
			Query: "jza80", DestinationCountry: "Australia",
			DeclaredPrice: decimal.NewFromInt(-1),
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestDomainErrors() {
	s.service.err = dErrors.New(dErrors.CodeUnsupportedCountry, "no eligibility rule for Atlantis/passenger")
	w := s.post(IntelligenceRequest{Query: "jza80", DestinationCountry: "Atlantis"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("unsupported_country", body["error"])
}
