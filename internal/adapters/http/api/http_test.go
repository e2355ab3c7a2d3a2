package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Htr33ml/CS25-2CIA/internal/adapters/http/api"
	"github.com/Htr33ml/CS25-2CIA/internal/adapters/sheet"
	service "github.com/Htr33ml/CS25-2CIA/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	creds := sheet.NewMemorySheet(
		sheet.WithHeader([]string{"Usuário", "Senha"}),
		sheet.WithRows([][]string{{"sgt.silva", "segredo123"}}),
	)
	svc, err := service.New(
		service.WithCredentialStore(creds),
		service.WithBcryptCost(bcrypt.MinCost),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

const anaBody = `{"nome":"Ana","saude_apto":"Sim","taf":"Sim","entrevista_mencao":"Excelente","contraindicado":"Não","instrucao_apto":"Sim","obeso":"Não"}`

func TestEnrollEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer(t)

		Convey("When a valid candidate is posted", func() {
			resp := postJSON(t, ts.URL+"/conscripts", anaBody)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			var entry map[string]any
			decode(t, resp, &entry)

			Convey("Then the response carries the derived values", func() {
				So(entry["nome"], ShouldEqual, "Ana")
				So(entry["situacao"], ShouldEqual, "Apto")
				So(entry["entrevista_peso"], ShouldEqual, 10)
				So(entry["ml_score"], ShouldEqual, 12.5)
				So(entry["ordem"], ShouldEqual, 1)
				So(entry["pelotao"], ShouldEqual, "1º Pelotão")
			})

			Convey("And reposting the same name answers 409", func() {
				resp := postJSON(t, ts.URL+"/conscripts", anaBody)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusConflict)
			})
		})

		Convey("Then an invalid enum value answers 400", func() {
			bad := strings.Replace(anaBody, `"taf":"Sim"`, `"taf":"Talvez"`, 1)
			resp := postJSON(t, ts.URL+"/conscripts", bad)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then a body that is not JSON answers 400", func() {
			resp := postJSON(t, ts.URL+"/conscripts", "nome=Ana")
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestUpdateEndpoint(t *testing.T) {
	Convey("Given a server holding one candidate", t, func() {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/conscripts", anaBody)
		resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusCreated)

		patch := func(body string) *http.Response {
			req, err := http.NewRequest(http.MethodPatch, ts.URL+"/conscripts", strings.NewReader(body))
			So(err, ShouldBeNil)
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			return resp
		}

		Convey("Then a valid field update answers 200", func() {
			resp := patch(`{"nome":"Ana","campo":"Saúde_Apto","valor":"Não"}`)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Then an unknown field answers 400", func() {
			resp := patch(`{"nome":"Ana","campo":"Pelotão","valor":"1"}`)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then an unknown candidate answers 404", func() {
			resp := patch(`{"nome":"Zeca","campo":"TAF","valor":"Não"}`)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestImportEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer(t)

		Convey("When a mixed batch is imported", func() {
			body := map[string][][]string{"rows": {
				{"Bia", "Sim", "", "Sim", "Bom", "", "Não", "Sim", "Não"},
				{"Caio", "Sim", "", "Sim"},
			}}
			raw, err := json.Marshal(body)
			So(err, ShouldBeNil)
			resp := postJSON(t, ts.URL+"/conscripts/import", string(raw))
			So(resp.StatusCode, ShouldEqual, http.StatusMultiStatus)

			var results []map[string]any
			decode(t, resp, &results)

			Convey("Then each row reports its own outcome", func() {
				So(results, ShouldHaveLength, 2)
				So(results[0]["nome"], ShouldEqual, "Bia")
				So(results[0]["error"], ShouldBeNil)
				So(results[1]["error"], ShouldNotBeNil)
			})
		})

		Convey("Then an empty batch answers 400", func() {
			resp := postJSON(t, ts.URL+"/conscripts/import", `{"rows":[]}`)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})

	Convey("Given a server with a one-row import cap", t, func() {
		svc, err := service.New(service.WithMaxImportRows(1))
		So(err, ShouldBeNil)
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		ts := httptest.NewServer(mux)
		defer ts.Close()

		Convey("Then an oversized batch answers 400", func() {
			body := map[string][][]string{"rows": {
				{"Ana", "Sim", "", "Sim", "Bom", "", "Não", "Sim", "Não"},
				{"Bia", "Sim", "", "Sim", "Bom", "", "Não", "Sim", "Não"},
			}}
			raw, err := json.Marshal(body)
			So(err, ShouldBeNil)
			resp := postJSON(t, ts.URL+"/conscripts/import", string(raw))
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRosterAndPlatoonsEndpoints(t *testing.T) {
	Convey("Given a server holding ranked candidates", t, func() {
		ts := newTestServer(t)
		for _, body := range []string{
			anaBody,
			strings.Replace(strings.Replace(anaBody, "Ana", "Gabi", 1), "Excelente", "Bom", 1),
			strings.Replace(strings.Replace(anaBody, "Ana", "Zara", 1), "Excelente", "Regular", 1),
		} {
			resp := postJSON(t, ts.URL+"/conscripts", body)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)
		}

		Convey("Then the roster lists every candidate in rank order", func() {
			resp, err := http.Get(ts.URL + "/roster")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var roster struct {
				Entries []map[string]any `json:"entries"`
			}
			decode(t, resp, &roster)
			So(roster.Entries, ShouldHaveLength, 3)
			So(roster.Entries[0]["nome"], ShouldEqual, "Ana")
			So(roster.Entries[0]["ordem"], ShouldEqual, 1)
		})

		Convey("Then platoons partitions the same candidates into three buckets", func() {
			resp, err := http.Get(ts.URL + "/platoons")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var platoons struct {
				Platoons map[string][]map[string]any `json:"platoons"`
			}
			decode(t, resp, &platoons)
			So(platoons.Platoons, ShouldHaveLength, 3)
			So(platoons.Platoons["1º Pelotão"][0]["nome"], ShouldEqual, "Ana")
			So(platoons.Platoons["2º Pelotão"][0]["nome"], ShouldEqual, "Gabi")
			So(platoons.Platoons["Sem Pelotão"][0]["nome"], ShouldEqual, "Zara")
		})

		Convey("Then the platoon report downloads as CSV", func() {
			resp, err := http.Get(ts.URL + "/report/1")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/csv")
			So(resp.Header.Get("Content-Disposition"), ShouldContainSubstring, "relatorio_1pelotao.csv")
			var buf bytes.Buffer
			_, err = buf.ReadFrom(resp.Body)
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "Ana")
			So(buf.String(), ShouldNotContainSubstring, "Gabi")
		})

		Convey("Then an unknown report bucket answers 400", func() {
			resp, err := http.Get(ts.URL + "/report/3")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestLoginEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer(t)

		Convey("Then matching credentials answer 200", func() {
			resp := postJSON(t, ts.URL+"/login", `{"usuario":"sgt.silva","senha":"segredo123"}`)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Then a wrong secret and an unknown user answer the same 401", func() {
			wrong := postJSON(t, ts.URL+"/login", `{"usuario":"sgt.silva","senha":"errado"}`)
			unknown := postJSON(t, ts.URL+"/login", `{"usuario":"ninguem","senha":"segredo123"}`)
			So(wrong.StatusCode, ShouldEqual, http.StatusUnauthorized)
			So(unknown.StatusCode, ShouldEqual, http.StatusUnauthorized)

			var a, b map[string]any
			decode(t, wrong, &a)
			decode(t, unknown, &b)
			So(a, ShouldResemble, b)
		})

		Convey("Then missing fields answer 400", func() {
			resp := postJSON(t, ts.URL+"/login", `{"usuario":"sgt.silva"}`)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer(t)

		Convey("Then the health endpoint exposes metrics", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
