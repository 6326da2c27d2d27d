package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/progno/internal/adapters/http/api"
	service "github.com/okian/progno/internal/app"
	"github.com/okian/progno/internal/config"
	"github.com/okian/progno/internal/domain/scoring"
	"github.com/okian/progno/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var diabetesNames = []string{
	"age", "sex", "bmi", "bp",
	"s1", "s2", "s3", "s4", "s5", "s6",
}

// stubScorer returns a canned response or error.
type stubScorer struct {
	response scoring.Response
	err      error
}

func (s *stubScorer) Score(_ context.Context, _ scoring.Request) (scoring.Response, error) {
	if s.err != nil {
		return scoring.Response{}, s.err
	}
	return s.response, nil
}

func validBody() string {
	return `{
		"age": 0.05, "sex": 0.05, "bmi": 0.06, "bp": 0.02,
		"s1": -0.04, "s2": -0.03, "s3": -0.04, "s4": 0.0,
		"s5": 0.01, "s6": -0.01
	}`
}

func newPipeline(sc scoring.Scorer) *service.Service {
	return service.New(
		service.WithFeatureNames(diabetesNames),
		service.WithScorer(sc),
	)
}

type envelope struct {
	Success    bool   `json:"success"`
	Prediction any    `json:"prediction"`
	Error      string `json:"error"`
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		scorer := &stubScorer{response: scoring.Response{Document: map[string]any{
			"predictions": []any{152.5},
		}}}
		cfg := config.New()
		cfg.Token = "dapi-test"
		cfg.EndpointURL = "https://dbc.example.com/invocations"

		server := api.NewServer(newPipeline(scorer), cfg)
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)

		Convey("Then the predict endpoint accepts POSTs", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the predict endpoint rejects GETs", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And the health endpoint is reachable", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the metrics endpoint serves the registry", func() {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "progno_gateway")
		})

		Convey("And predict responses carry a request id", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})

		Convey("And a client-supplied request id is preserved", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			req.Header.Set("X-Request-ID", "caller-chosen-id")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-ID"), ShouldEqual, "caller-chosen-id")
		})
	})
}

func TestPredictHandler_HandlePredict(t *testing.T) {
	Convey("Given a predict handler over the real pipeline", t, func() {
		scorer := &stubScorer{response: scoring.Response{Document: map[string]any{
			"predictions": []any{152.5},
		}}}
		handler := api.NewPredictHandler(newPipeline(scorer))

		Convey("When posting a valid feature mapping", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then the prediction is relayed in the success envelope", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.Prediction, ShouldEqual, 152.5)
			})
		})

		Convey("When posting an empty body", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(""))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then the no-data message comes back with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Success, ShouldBeFalse)
				So(resp.Error, ShouldEqual, "No data provided in request body")
			})
		})

		Convey("When posting an empty JSON object", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then the no-data message comes back with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldEqual, "No data provided in request body")
			})
		})

		Convey("When posting malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{broken`))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then a 400 with an invalid-JSON message comes back", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldContainSubstring, "invalid JSON")
			})
		})

		Convey("When features are missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict",
				strings.NewReader(`{"age": 0.05, "bmi": 0.06}`))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then the validator's message lists them in declared order", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldEqual, "Missing required features: sex, bp, s1, s2, s3, s4, s5, s6")
			})
		})

		Convey("When a feature value is non-numeric", func() {
			body := strings.Replace(validBody(), `"age": 0.05`, `"age": "abc"`, 1)
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then the offending feature is named", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldEqual, "Invalid value for feature 'age': must be a number")
			})
		})

		Convey("When the upstream call times out", func() {
			scorer.err = scoring.NewTimeoutFailure(30*time.Second, nil)

			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then a 500 names the network failure and the configured duration", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldContainSubstring, "network error while calling model endpoint")
				So(resp.Error, ShouldContainSubstring, "30 seconds")
			})
		})

		Convey("When the upstream endpoint is unreachable", func() {
			scorer.err = scoring.NewConnectionFailure(nil)

			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then a 500 with a connectivity hint comes back", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldContainSubstring, "Failed to connect")
			})
		})

		Convey("When the upstream answers 503 with a body", func() {
			scorer.err = scoring.NewNonSuccessFailure(503, "overloaded")

			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then a 400 embeds the status and raw body", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Error, ShouldContainSubstring, "503")
				So(resp.Error, ShouldContainSubstring, "overloaded")
			})
		})

		Convey("When the upstream answer has no predictions field", func() {
			scorer.response = scoring.Response{Document: map[string]any{
				"detail": "opaque result",
			}}

			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then the whole document is the prediction value", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp envelope
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.Prediction, ShouldResemble, map[string]any{"detail": "opaque result"})
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler over a complete configuration", t, func() {
		cfg := config.New()
		cfg.Token = "dapi-test"
		cfg.EndpointURL = "https://dbc.example.com/invocations"
		handler := api.NewHealthHandler(cfg)

		Convey("When checking health", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then the app identity comes back healthy", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp struct {
					Status  string `json:"status"`
					App     string `json:"app"`
					Version string `json:"version"`
				}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Status, ShouldEqual, "healthy")
				So(resp.App, ShouldEqual, cfg.AppName)
				So(resp.Version, ShouldEqual, cfg.AppVersion)
			})
		})
	})

	Convey("Given a health handler over a configuration missing token and endpoint", t, func() {
		handler := api.NewHealthHandler(config.New())

		Convey("When checking health", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then both problems are reported with 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)

				var resp struct {
					Status string   `json:"status"`
					Errors []string `json:"errors"`
				}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Status, ShouldEqual, "unhealthy")
				joined := strings.Join(resp.Errors, "\n")
				So(joined, ShouldContainSubstring, "token is not set")
				So(joined, ShouldContainSubstring, "endpoint_url is not set")
			})
		})
	})

	Convey("Given a production configuration with the default secret", t, func() {
		cfg := config.New()
		cfg.Token = "dapi-test"
		cfg.EndpointURL = "https://dbc.example.com/invocations"
		cfg.Environment = "production"
		handler := api.NewHealthHandler(cfg)

		Convey("When checking health", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then the default secret is reported", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)

				var resp struct {
					Errors []string `json:"errors"`
				}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(strings.Join(resp.Errors, "\n"), ShouldContainSubstring, "secret_key")
			})
		})
	})
}
