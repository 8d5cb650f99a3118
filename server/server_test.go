package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/testutil"
	"github.com/ggoeuh/DAL-sub000/stats"
	"github.com/ggoeuh/DAL-sub000/store"
)

const bundleJSON = `{
  "schedules": [
    {"id": "a", "date": "2025-03-03", "start": "09:00", "end": "10:30", "title": "영어", "tag": "영어"},
    {"id": "b", "date": "2025-03-04", "start": "09:00", "end": "09:30", "title": "영어", "tag": "영어"}
  ],
  "tags": [{"tagType": "학습", "color": "#4A90E2"}],
  "tagItems": [{"tagType": "학습", "tagName": "영어"}],
  "monthlyPlans": "corrupted",
  "monthlyGoals": [{"month": "2025-03", "goals": [{"tagType": "학습", "targetHours": "02:00"}]}]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	gw, err := store.NewBoltStore(testutil.TempPath(t, "dal.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = gw.Close()
	})

	s := New(store.NewSaver(gw))
	s.now = testutil.FixedClock(t, "2025-03-20 12:00")

	return s
}

func do(t *testing.T, s *Server, method, target, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

func TestBundleRoundTrip(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodPut, "/api/users/minji/bundle", bundleJSON)
	require.Equal(t, http.StatusOK, code, string(body))

	var res store.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)

	code, body = do(t, s, http.MethodGet, "/api/users/minji/bundle", "")
	require.Equal(t, http.StatusOK, code)

	var b models.Bundle
	require.NoError(t, json.Unmarshal(body, &b))
	assert.Len(t, b.Schedules, 2)
	assert.NotNil(t, b.MonthlyPlans)
	assert.Empty(t, b.MonthlyPlans)

	code, body = do(t, s, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["minji"]`, string(body))
}

func TestUnknownUserHasEmptyBundle(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodGet, "/api/users/nobody/bundle", "")
	require.Equal(t, http.StatusOK, code)

	assert.JSONEq(
		t,
		`{"schedules":[],"tags":[],"tagItems":[],"monthlyPlans":[],"monthlyGoals":[]}`,
		string(body),
	)

	code, body = do(t, s, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))
}

func TestPutRejectsNonObject(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodPut, "/api/users/minji/bundle", `[1, 2]`)
	assert.Equal(t, http.StatusBadRequest, code)

	var res store.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestPutRejectsInvalidSchedules(t *testing.T) {
	cases := []struct {
		name      string
		schedules string
	}{
		{
			name: "overlap",
			schedules: `[
				{"id": "a", "date": "2025-03-10", "start": "09:00", "end": "10:00", "title": "a"},
				{"id": "b", "date": "2025-03-10", "start": "09:30", "end": "10:30", "title": "b"}
			]`,
		},
		{
			name:      "start after end",
			schedules: `[{"id": "c", "date": "2025-03-10", "start": "12:00", "end": "11:00", "title": "c"}]`,
		},
		{
			name:      "bad date",
			schedules: `[{"id": "d", "date": "10-03-2025", "start": "09:00", "end": "10:00", "title": "d"}]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)

			code, body := do(
				t,
				s,
				http.MethodPut,
				"/api/users/minji/bundle",
				`{"schedules": `+tc.schedules+`}`,
			)
			require.Equal(t, http.StatusBadRequest, code, string(body))

			var res store.Result
			require.NoError(t, json.Unmarshal(body, &res))
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)

			code, body = do(t, s, http.MethodGet, "/api/users/minji/bundle", "")
			require.Equal(t, http.StatusOK, code)

			var b models.Bundle
			require.NoError(t, json.Unmarshal(body, &b))
			assert.Empty(t, b.Schedules)
		})
	}
}

func TestPutStoresCanonicalTimes(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodPut, "/api/users/minji/bundle", `{"schedules": [
		{"id": "a", "date": " 2025-03-10", "start": "9:00", "end": "0010:00", "title": "a"}
	]}`)
	require.Equal(t, http.StatusOK, code, string(body))

	code, body = do(t, s, http.MethodGet, "/api/users/minji/bundle", "")
	require.Equal(t, http.StatusOK, code)

	var b models.Bundle
	require.NoError(t, json.Unmarshal(body, &b))
	require.Len(t, b.Schedules, 1)
	assert.Equal(t, "2025-03-10", b.Schedules[0].Date)
	assert.Equal(t, "09:00", b.Schedules[0].Start)
	assert.Equal(t, "10:00", b.Schedules[0].End)
}

func TestStats(t *testing.T) {
	s := newTestServer(t)

	code, _ := do(t, s, http.MethodPut, "/api/users/minji/bundle", bundleJSON)
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, s, http.MethodGet, "/api/users/minji/stats", "")
	require.Equal(t, http.StatusOK, code)

	var r stats.Report
	require.NoError(t, json.Unmarshal(body, &r))

	assert.Equal(t, "2025-03", r.Month)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "학습", r.Rows[0].TagType)
	assert.Equal(t, 100, r.Rows[0].Percent)

	code, body = do(t, s, http.MethodGet, "/api/users/minji/stats?month=2025-04", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Empty(t, r.Rows)

	code, _ = do(t, s, http.MethodGet, "/api/users/minji/stats?month=04-2025", "")
	assert.Equal(t, http.StatusBadRequest, code)
}
