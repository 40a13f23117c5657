package session

import (
	"testing"
	"time"

	"mindhaven/internal/core/model"
)

// newTestTimer returns a timer whose background ticker never fires,
// so tests drive tick directly.
func newTestTimer(duration time.Duration) *Timer {
	return New(model.SessionConfig{Duration: duration}, Options{TickInterval: time.Hour})
}

func drive(timer *Timer, ticks int) {
	at := time.Now()
	for i := 0; i < ticks; i++ {
		at = at.Add(time.Second)
		timer.tick(at)
	}
}

func TestNewStartsIdleWithFullDuration(t *testing.T) {
	timer := newTestTimer(25 * time.Minute)
	if got := timer.State(); got != StateIdle {
		t.Errorf("state: got %q, want %q", got, StateIdle)
	}
	if got := timer.Remaining(); got != 25*time.Minute {
		t.Errorf("remaining: got %v, want %v", got, 25*time.Minute)
	}
}

func TestTickDecrementsBySecond(t *testing.T) {
	timer := newTestTimer(10 * time.Second)
	timer.Start()
	drive(timer, 3)
	if got := timer.Remaining(); got != 7*time.Second {
		t.Errorf("remaining after 3 ticks: got %v, want %v", got, 7*time.Second)
	}
	if got := timer.State(); got != StateRunning {
		t.Errorf("state: got %q, want %q", got, StateRunning)
	}
}

func TestTickWhileNotRunningIsIgnored(t *testing.T) {
	timer := newTestTimer(10 * time.Second)
	drive(timer, 5)
	if got := timer.Remaining(); got != 10*time.Second {
		t.Errorf("remaining: got %v, want %v", got, 10*time.Second)
	}

	timer.Start()
	timer.Pause()
	drive(timer, 5)
	if got := timer.Remaining(); got != 10*time.Second {
		t.Errorf("remaining after paused ticks: got %v, want %v", got, 10*time.Second)
	}
}

func TestPauseThenStartResumesFromPausedRemaining(t *testing.T) {
	timer := newTestTimer(1500 * time.Second)
	timer.Start()
	drive(timer, 100)
	timer.Pause()
	if got := timer.Remaining(); got != 1400*time.Second {
		t.Fatalf("remaining at pause: got %v, want %v", got, 1400*time.Second)
	}

	timer.Start()
	drive(timer, 1)
	if got := timer.Remaining(); got != 1399*time.Second {
		t.Errorf("remaining after resume: got %v, want %v", got, 1399*time.Second)
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	timer := newTestTimer(10 * time.Second)
	timer.Start()
	drive(timer, 4)
	timer.Start()
	if got := timer.Remaining(); got != 6*time.Second {
		t.Errorf("remaining: got %v, want %v", got, 6*time.Second)
	}
	if got := timer.State(); got != StateRunning {
		t.Errorf("state: got %q, want %q", got, StateRunning)
	}
}

func TestPauseWhileIdleIsNoOp(t *testing.T) {
	timer := newTestTimer(10 * time.Second)
	timer.Pause()
	if got := timer.State(); got != StateIdle {
		t.Errorf("state: got %q, want %q", got, StateIdle)
	}
}

func TestResetFromEveryState(t *testing.T) {
	cases := []struct {
		name    string
		arrange func(timer *Timer)
	}{
		{"idle", func(timer *Timer) {}},
		{"running", func(timer *Timer) {
			timer.Start()
			drive(timer, 2)
		}},
		{"paused", func(timer *Timer) {
			timer.Start()
			drive(timer, 2)
			timer.Pause()
		}},
		{"completed", func(timer *Timer) {
			timer.Start()
			drive(timer, 10)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			timer := newTestTimer(10 * time.Second)
			tc.arrange(timer)
			timer.Reset()
			if got := timer.State(); got != StateIdle {
				t.Errorf("state after reset: got %q, want %q", got, StateIdle)
			}
			if got := timer.Remaining(); got != 10*time.Second {
				t.Errorf("remaining after reset: got %v, want %v", got, 10*time.Second)
			}
		})
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	timer := newTestTimer(3 * time.Second)
	events := timer.Subscribe(32)
	timer.Start()
	drive(timer, 10)

	if got := timer.State(); got != StateCompleted {
		t.Fatalf("state: got %q, want %q", got, StateCompleted)
	}
	if got := timer.Remaining(); got != 0 {
		t.Errorf("remaining: got %v, want 0", got)
	}

	timer.Close()
	completions := 0
	for event := range events {
		if event.Type == EventCompleted {
			completions++
		}
	}
	if completions != 1 {
		t.Errorf("completion events: got %d, want 1", completions)
	}
}

func TestStartAfterCompletionIsNoOp(t *testing.T) {
	timer := newTestTimer(2 * time.Second)
	timer.Start()
	drive(timer, 2)
	if got := timer.State(); got != StateCompleted {
		t.Fatalf("state: got %q, want %q", got, StateCompleted)
	}

	timer.Start()
	if got := timer.State(); got != StateCompleted {
		t.Errorf("state after start: got %q, want %q", got, StateCompleted)
	}
	drive(timer, 2)
	if got := timer.Remaining(); got != 0 {
		t.Errorf("remaining: got %v, want 0", got)
	}
}

func TestFullPomodoroScenario(t *testing.T) {
	timer := newTestTimer(1500 * time.Second)
	events := timer.Subscribe(2048)
	timer.Start()
	drive(timer, 1500)

	if got := timer.State(); got != StateCompleted {
		t.Errorf("state: got %q, want %q", got, StateCompleted)
	}
	if got := FormatRemaining(timer.Remaining()); got != "00:00" {
		t.Errorf("display: got %q, want %q", got, "00:00")
	}

	timer.Close()
	completions := 0
	for event := range events {
		if event.Type == EventCompleted {
			completions++
		}
	}
	if completions != 1 {
		t.Errorf("completion events: got %d, want 1", completions)
	}
}

func TestUpdateConfigResetsToNewDuration(t *testing.T) {
	timer := newTestTimer(10 * time.Second)
	timer.Start()
	drive(timer, 4)
	timer.UpdateConfig(model.SessionConfig{Duration: 50 * time.Minute})
	if got := timer.State(); got != StateIdle {
		t.Errorf("state: got %q, want %q", got, StateIdle)
	}
	if got := timer.Remaining(); got != 50*time.Minute {
		t.Errorf("remaining: got %v, want %v", got, 50*time.Minute)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{65 * time.Second, "01:05"},
		{25 * time.Minute, "25:00"},
		{99*time.Minute + 9*time.Second, "99:09"},
	}
	for _, tc := range cases {
		if got := FormatRemaining(tc.in); got != tc.want {
			t.Errorf("FormatRemaining(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
