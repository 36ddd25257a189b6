package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
)

type fakeService struct {
	err error
}

func (f *fakeService) ResolveVehicle(_ context.Context, query string) (resolver.VehicleIdentity, error) {
	if f.err != nil {
		return resolver.VehicleIdentity{}, f.err
	}
	return resolver.VehicleIdentity{
		Make: "Toyota", Model: "Supra", ManufactureYear: 1993,
		ChassisCode: "JZA80", OriginCountry: "JP",
		ResolutionType: resolver.ResolutionChassis, ConfidenceScore: 100,
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

func (s *HandlerSuite) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/vehicles/resolve", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestHandleResolve() {
	w := s.post(`{"query": "jza80"}`)
	s.Equal(http.StatusOK, w.Code)

	var identity resolver.VehicleIdentity
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &identity))
	s.Equal("Toyota", identity.Make)
	s.Equal(resolver.ResolutionChassis, identity.ResolutionType)
	s.Equal(100, identity.ConfidenceScore)
}

func (s *HandlerSuite) TestValidation() {
	s.Run("malformed body", func() {
		w := s.post(`{"query": `)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("empty query", func() {
		w := s.post(`{"query": "  "}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("oversized query", func() {
		w := s.post(`{"query": "` + strings.Repeat("a", maxQueryLength+1) + `"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestUnrecognizedQuery() {
	s.service.err = dErrors.New(dErrors.CodeUnrecognizedIdentifier, "no resolution strategy matched the query")
	w := s.post(`{"query": "mystery machine"}`)
	s.Equal(http.StatusNotFound, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("unrecognized_identifier", body["error"])
}
