package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/skilltree"
	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/aretw0/skilltree/pkg/observability"
	"github.com/aretw0/skilltree/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nova = `
id: nova
name: Nova
components:
  - type: trigger
    components:
      - type: cost
        key: mana
        settings: {mana: 10}
      - type: target
        key: self
        components:
          - type: mechanic
            key: flash
`

const broken = `
id: broken
components:
  - type: trigger
    components:
      - type: bogus
`

type fixture struct {
	handler http.Handler
	server  *Server
	loader  *memory.Loader
	world   *memory.World
}

func setup(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	loader := memory.NewLoader(map[string]string{"nova": nova, "broken": broken})
	eng, err := skilltree.New("",
		skilltree.WithLoader(loader),
		skilltree.WithMetrics(observability.NewMetrics(reg)),
	)
	require.NoError(t, err)
	_, err = eng.Reload(context.Background())
	require.NoError(t, err)

	world := memory.NewWorld(entity.New("steve", entity.Human(), entity.WithMana(15, 20)))
	lookup := func(id string) (domain.Caster, bool) {
		e, ok := world.Entity(id)
		if !ok {
			return nil, false
		}
		c, ok := e.(domain.Caster)
		return c, ok
	}
	srv := NewServer(eng, WithCasters(lookup), WithGatherer(reg))
	return &fixture{handler: srv.Routes(), server: srv, loader: loader, world: world}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestServer_Skills(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/skills", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []SkillSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "nova", list[0].ID)
	assert.Equal(t, 4, list[0].Nodes)

	w = f.do(t, "GET", "/skills/nova", "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail SkillDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Tree, 4)
	assert.Equal(t, domain.CategoryCost, detail.Tree[1].Category)
	assert.EqualValues(t, 10, detail.Tree[1].Settings["mana"])

	w = f.do(t, "GET", "/skills/meteor", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "GET", "/skills/nova/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph TD")
}

func TestServer_Report(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/skills/broken/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Has(domain.CodeUnknownType))

	req := httptest.NewRequest("GET", "/skills/broken/report", nil)
	req.Header.Set("Accept", "text/markdown")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "# Skill `broken`")

	w = f.do(t, "GET", "/skills/nothing/report", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Cast(t *testing.T) {
	f := setup(t)

	w := f.do(t, "POST", "/skills/nova/cast", `{"caster_id":"steve"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp CastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Applied)

	w = f.do(t, "POST", "/skills/nova/cast", `{"caster_id":"steve"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, skilltree.ReasonCost, resp.Reason)

	assert.Equal(t, http.StatusNotFound, f.do(t, "POST", "/skills/nova/cast", `{"caster_id":"alex"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, "POST", "/skills/nova/cast", `{"caster_id":"steve","level":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, "POST", "/skills/nova/cast", `nope`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "POST", "/skills/meteor/cast", `{"caster_id":"steve"}`).Code)
}

func TestServer_CastWithoutLookup(t *testing.T) {
	eng, err := skilltree.New("")
	require.NoError(t, err)
	handler := NewHandler(eng)

	req := httptest.NewRequest("POST", "/skills/nova/cast", strings.NewReader(`{"caster_id":"steve"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestServer_FireEvent(t *testing.T) {
	f := setup(t)

	w := f.do(t, "POST", "/casters/steve/events/damaged", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"fired":0}`, w.Body.String())
}

func TestServer_ReloadAndCasterSkills(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/casters/steve/skills", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	f.loader.Delete("nova")
	w = f.do(t, "POST", "/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report skilltree.ReloadReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Zero(t, report.LoadedCount)
	assert.Equal(t, []string{"nova"}, report.RemovedIDs)
}

func TestServer_HealthInfoMetrics(t *testing.T) {
	f := setup(t)

	assert.JSONEq(t, `{"status":"ok"}`, f.do(t, "GET", "/health", "").Body.String())

	var info map[string]any
	require.NoError(t, json.Unmarshal(f.do(t, "GET", "/info", "").Body.Bytes(), &info))
	assert.Equal(t, "skilltree-http", info["app"])
	assert.EqualValues(t, 1, info["skills"])

	w := f.do(t, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "skilltree_skills_loaded 1")

	w = f.do(t, "OPTIONS", "/skills", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_CasterStream(t *testing.T) {
	f := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events?caster_id=steve", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.ServeHTTP(wSub, reqSub)
	}()

	require.Eventually(t, func() bool {
		return f.server.Streams.Subscribers(CasterTopic("steve")) == 1
	}, time.Second, 10*time.Millisecond)

	w := f.do(t, "POST", "/skills/nova/cast", `{"caster_id":"steve"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// The broadcast is buffered; give the stream loop a moment to drain it.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	out := wSub.Body.String()
	assert.Contains(t, out, "event: ping")
	assert.Contains(t, out, `"skill_id":"nova"`)
	assert.Contains(t, out, `"success":true`)
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe(TopicReload)

	for i := 0; i < 20; i++ {
		sm.Broadcast(TopicReload, "x")
	}
	assert.Len(t, ch, 10)

	cancel()
	assert.Zero(t, sm.Subscribers(TopicReload))
}

func TestServer_Components(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/components?category=cost", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []ComponentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))

	keys := make([]string, len(list))
	for i, c := range list {
		keys[i] = c.Key
		assert.Equal(t, domain.CategoryCost, c.Category)
	}
	assert.Equal(t, []string{"health", "item", "mana", "stamina"}, keys)

	item := list[1]
	require.Contains(t, item.Settings, "item")
	assert.True(t, schema.IsRequired(item.Settings["item"]))
	assert.Equal(t, "bool", item.Settings["check-only"].Name())

	w = f.do(t, "GET", "/components?category=spell", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
