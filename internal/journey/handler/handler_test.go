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
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"importintel/internal/intelligence"
	"importintel/internal/journey"
	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
)

// fakeBackend implements Service, Resolver, and Assembler with canned
// behavior for handler tests.
type fakeBackend struct {
	sessions    map[string]journey.Session
	resolveErr  error
	assembleErr error
	storeDown   bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{sessions: map[string]journey.Session{}}
}

func (f *fakeBackend) supra() resolver.VehicleIdentity {
	return resolver.VehicleIdentity{
		Make: "Toyota", Model: "Supra", ManufactureYear: 1993,
		ChassisCode: "JZA80", OriginCountry: "JP",
		ResolutionType: resolver.ResolutionChassis, ConfidenceScore: 100,
	}
}

func (f *fakeBackend) ResolveVehicle(_ context.Context, _ string) (resolver.VehicleIdentity, error) {
	if f.resolveErr != nil {
		return resolver.VehicleIdentity{}, f.resolveErr
	}
	return f.supra(), nil
}

func (f *fakeBackend) Assemble(_ context.Context, _ string, req intelligence.Request) (intelligence.Intelligence, error) {
	if f.assembleErr != nil {
		return intelligence.Intelligence{}, f.assembleErr
	}
	return intelligence.Intelligence{
		Vehicle:            f.supra(),
		DestinationCountry: req.DestinationCountry,
		TimelineWeeks:      14,
	}, nil
}

func (f *fakeBackend) Create(_ context.Context, query string, vehicle resolver.VehicleIdentity) (journey.Session, error) {
	if f.storeDown {
		return journey.Session{}, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
	}
	session := journey.Session{
		Token:         "token-fixed",
		OriginalQuery: query,
		Vehicle:       vehicle,
		CurrentStep:   journey.StepLookup,
		Active:        true,
		CreatedAt:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		LastAccessed:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	f.sessions[session.Token] = session
	return session, nil
}

func (f *fakeBackend) Get(_ context.Context, token string) (journey.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return journey.Session{}, journey.ErrNotFound
	}
	return session, nil
}

func (f *fakeBackend) Advance(_ context.Context, token, destination string, state *intelligence.Intelligence) (journey.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return journey.Session{}, journey.ErrNotFound
	}
	session.CurrentStep = journey.StepJourney
	session.Destination = destination
	session.State = state
	f.sessions[token] = session
	return session, nil
}

func (f *fakeBackend) Reconstruct(ctx context.Context, params journey.ReconstructParams) (journey.Session, bool, error) {
	for _, session := range f.sessions {
		if session.Vehicle.ChassisCode == params.ChassisCode {
			return session, true, nil
		}
	}
	session, err := f.Create(ctx, params.ChassisCode, f.supra())
	return session, false, err
}

func (f *fakeBackend) RecentQueries(_ context.Context, _ int) ([]journey.Session, error) {
	var sessions []journey.Session
	for _, session := range f.sessions {
		sessions = append(sessions, session)
	}
	return sessions, nil
}

type HandlerSuite struct {
	suite.Suite
	backend *fakeBackend
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.backend = newFakeBackend()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(s.backend, s.backend, s.backend, logger, nil)
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestCreate() {
	w := s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})
	s.Equal(http.StatusCreated, w.Code)

	var resp SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("token-fixed", resp.Session.Token)
	s.Equal(journey.StepLookup, resp.Session.CurrentStep)
	s.Equal("Toyota", resp.Session.Vehicle.Make)
}

func (s *HandlerSuite) TestCreateValidation() {
	w := s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "   "})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestCreateUnrecognized() {
	s.backend.resolveErr = dErrors.New(dErrors.CodeUnrecognizedIdentifier, "no resolution strategy matched the query")
	w := s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "mystery machine"})
	s.Equal(http.StatusNotFound, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("unrecognized_identifier", body["error"])
}

func (s *HandlerSuite) TestGet() {
	s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})

	w := s.do(http.MethodGet, "/v1/journeys/token-fixed", nil)
	s.Equal(http.StatusOK, w.Code)

	missing := s.do(http.MethodGet, "/v1/journeys/unknown", nil)
	s.Equal(http.StatusNotFound, missing.Code)
}

func (s *HandlerSuite) TestAdvance() {
	s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})

	w := s.do(http.MethodPost, "/v1/journeys/token-fixed/destination", AdvanceRequest{
		DestinationCountry: "Australia",
		DeclaredPrice:      decimal.NewFromInt(40000),
	})
	s.Equal(http.StatusOK, w.Code)

	var resp SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(journey.StepJourney, resp.Session.CurrentStep)
	s.Equal("Australia", resp.Session.Destination)
	s.Require().NotNil(resp.Session.State)
	s.Equal(14, resp.Session.State.TimelineWeeks)
}

func (s *HandlerSuite) TestAdvanceUnsupportedDestination() {
	s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})
	s.backend.assembleErr = dErrors.New(dErrors.CodeUnsupportedCountry, "no eligibility rule for Atlantis/passenger")

	w := s.do(http.MethodPost, "/v1/journeys/token-fixed/destination", AdvanceRequest{
		DestinationCountry: "Atlantis",
	})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *HandlerSuite) TestReconstruct() {
	s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})

	matched := s.do(http.MethodPost, "/v1/journeys/reconstruct", ReconstructRequest{ChassisCode: "JZA80"})
	s.Equal(http.StatusOK, matched.Code)

	var resp SessionResponse
	s.Require().NoError(json.Unmarshal(matched.Body.Bytes(), &resp))
	s.Require().NotNil(resp.Reconstructed)
	s.True(*resp.Reconstructed)

	empty := s.do(http.MethodPost, "/v1/journeys/reconstruct", ReconstructRequest{Destination: "Australia"})
	s.Equal(http.StatusBadRequest, empty.Code)
}

func (s *HandlerSuite) TestRecent() {
	s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})

	w := s.do(http.MethodGet, "/v1/journeys/recent", nil)
	s.Equal(http.StatusOK, w.Code)

	var feed []RecentQueryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &feed))
	s.Require().Len(feed, 1)
	s.Equal("jza80", feed[0].Query)
	s.NotContains(w.Body.String(), "token-fixed", "the feed must never leak tokens")

	bad := s.do(http.MethodGet, "/v1/journeys/recent?limit=nope", nil)
	s.Equal(http.StatusBadRequest, bad.Code)
}

func (s *HandlerSuite) TestStoreOutage() {
	s.backend.storeDown = true
	w := s.do(http.MethodPost, "/v1/journeys", CreateRequest{Query: "jza80"})
	s.Equal(http.StatusServiceUnavailable, w.Code)
}
