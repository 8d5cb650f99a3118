package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	titles []string
	chimes int
}

func (r *recorder) options(sound bool, sendErr error) []Option {
	return []Option{
		WithSound(sound),
		WithSender(func(title, _, _ string) error {
			r.titles = append(r.titles, title)
			return sendErr
		}),
		WithChime(func() error {
			r.chimes++
			return nil
		}),
	}
}

func TestNotify(t *testing.T) {
	cases := []struct {
		name       string
		enabled    bool
		sound      bool
		sendErr    error
		wantTitles int
		wantChimes int
	}{
		{"disabled", false, true, nil, 0, 0},
		{"silent", true, false, nil, 1, 0},
		{"with sound", true, true, nil, 1, 1},
		{"send failure still chimes", true, true, errors.New("no daemon"), 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r recorder

			n := New(tc.enabled, "dal", r.options(tc.sound, tc.sendErr)...)

			n.Notify("Reminder", "study")

			assert.Len(t, r.titles, tc.wantTitles)
			assert.Equal(t, tc.wantChimes, r.chimes)
		})
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier

	assert.NotPanics(t, func() {
		n.Notify("a", "b")
	})
}
