package remind

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/notify"
	"github.com/ggoeuh/DAL-sub000/internal/testutil"
)

type staticGateway struct {
	bundle models.Bundle
}

func (g *staticGateway) Load(context.Context, string) (models.Bundle, error) {
	return g.bundle.Clone(), nil
}

func (g *staticGateway) Save(context.Context, string, models.Bundle) error {
	return nil
}

func (g *staticGateway) ListUsers(context.Context) ([]string, error) {
	return []string{"minji"}, nil
}

func (g *staticGateway) Close() error {
	return nil
}

func testBundle() models.Bundle {
	b := models.NewBundle()

	b.TagItems = []models.TagItem{{TagType: "학습", TagName: "영어"}}
	b.Schedules = []models.Schedule{
		{ID: "late", Date: "2025-03-10", Start: "18:00", End: "19:00", Title: "저녁 공부", Tag: "영어"},
		{ID: "past", Date: "2025-03-10", Start: "07:00", End: "07:30", Title: "아침"},
		{ID: "soon", Date: "2025-03-10", Start: "09:00", End: "10:00", Title: "회의"},
		{ID: "done", Date: "2025-03-10", Start: "11:00", End: "12:00", Title: "완료", Done: true},
		{ID: "other", Date: "2025-03-11", Start: "09:00", End: "10:00", Title: "내일"},
	}

	return b
}

func TestDue(t *testing.T) {
	b := testBundle()
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local)

	got := Due(&b, 5*time.Minute, now)

	require.Len(t, got, 2)

	assert.Equal(t, "soon", got[0].Schedule.ID)
	assert.Equal(t, time.Date(2025, time.March, 10, 8, 55, 0, 0, time.Local), got[0].At)
	assert.Equal(t, "기타", got[0].TagType)

	assert.Equal(t, "late", got[1].Schedule.ID)
	assert.Equal(t, "학습", got[1].TagType)
	assert.Equal(t, "18:00-19:00 (학습)", got[1].Message())
}

func TestDueIncludesReminderAtNow(t *testing.T) {
	b := testBundle()
	now := time.Date(2025, time.March, 10, 8, 55, 0, 0, time.Local)

	got := Due(&b, 5*time.Minute, now)

	require.NotEmpty(t, got)
	assert.Equal(t, "soon", got[0].Schedule.ID)
}

func TestDateSpec(t *testing.T) {
	at := time.Date(2025, time.March, 10, 8, 55, 0, 0, time.Local)

	assert.Equal(t, "0 55 8 10 3 *", dateSpec(at))
}

func TestDaemonRefreshAndFire(t *testing.T) {
	var titles []string

	n := notify.New(true, "dal", notify.WithSender(func(title, _, _ string) error {
		titles = append(titles, title)
		return nil
	}))

	d := New(&staticGateway{bundle: testBundle()}, "minji", 5*time.Minute, n)
	d.now = testutil.FixedClock(t, "2025-03-10 08:00")

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, 2, d.Pending())

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, 2, d.Pending(), "refresh must replace, not append")
	assert.Len(t, d.cron.Entries(), 2)

	for _, e := range d.cron.Entries() {
		e.Job.Run()
	}

	assert.ElementsMatch(t, []string{"회의", "저녁 공부"}, titles)
}

func TestDaemonRunStops(t *testing.T) {
	d := New(&staticGateway{bundle: models.NewBundle()}, "minji", time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)

	go func() {
		errCh <- d.Run(ctx)
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
