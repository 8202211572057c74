package streak

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/timeutil"
)

var (
	now   = time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)
	today = timeutil.DayOf(now)
)

func ago(n int) timeutil.Day {
	return today.AddDays(-n)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		byDay      map[timeutil.Day]float64
		todayValue float64
		want       Result
	}{{
		name: "empty log, nothing today",
		want: Result{},
	}, {
		name:       "empty log, active today",
		todayValue: 3,
		want:       Result{Current: 1, Longest: 1},
	}, {
		name:       "today breaks the streak",
		byDay:      map[timeutil.Day]float64{ago(1): 5, ago(2): 3},
		todayValue: 0,
		want:       Result{Current: 0, Longest: 2},
	}, {
		name:       "continuation through yesterday",
		byDay:      map[timeutil.Day]float64{ago(1): 1, ago(2): 1, ago(3): 1, ago(4): 1},
		todayValue: 10,
		want:       Result{Current: 5, Longest: 5},
	}, {
		name:       "gap stops the backward walk",
		byDay:      map[timeutil.Day]float64{ago(1): 1, ago(3): 1, ago(4): 1, ago(5): 1},
		todayValue: 2,
		want:       Result{Current: 2, Longest: 3},
	}, {
		name:       "zero entry stops the backward walk",
		byDay:      map[timeutil.Day]float64{ago(1): 1, ago(2): 0, ago(3): 1},
		todayValue: 2,
		want:       Result{Current: 2, Longest: 2},
	}, {
		name:       "longest run in the past",
		byDay:      map[timeutil.Day]float64{ago(10): 1, ago(11): 1, ago(12): 1, ago(13): 1, ago(1): 9},
		todayValue: 1,
		want:       Result{Current: 2, Longest: 4},
	}, {
		name:       "inactive day inside a run resets it",
		byDay:      map[timeutil.Day]float64{ago(6): 1, ago(5): 1, ago(4): 0, ago(3): 1},
		todayValue: 0,
		want:       Result{Current: 0, Longest: 2},
	}, {
		// todayValue decides today even when byDay also carries a today key.
		name:       "today entry in history is overridden",
		byDay:      map[timeutil.Day]float64{today: 50, ago(1): 1},
		todayValue: 0,
		want:       Result{Current: 0, Longest: 1},
	}, {
		name:       "today entry in history is not double counted",
		byDay:      map[timeutil.Day]float64{today: 50, ago(1): 1},
		todayValue: 4,
		want:       Result{Current: 2, Longest: 2},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.byDay, tt.todayValue, now)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestContiguityAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	at := time.Date(2024, 3, 11, 9, 0, 0, 0, ny)
	byDay := map[timeutil.Day]float64{
		{Year: 2024, Month: time.March, Day: 9}:  1,
		{Year: 2024, Month: time.March, Day: 10}: 1,
	}
	got := Compute(byDay, 1, at)
	if got.Current != 3 || got.Longest != 3 {
		t.Fatalf("expected 3/3 across the spring-forward day, got %+v", got)
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		byDay := map[timeutil.Day]float64{}
		for n := 1; n < 40; n++ {
			if r.Intn(3) > 0 {
				byDay[ago(n)] = float64(r.Intn(3))
			}
		}
		todayValue := float64(r.Intn(2))
		got := Compute(byDay, todayValue, now)
		if got.Longest < got.Current {
			t.Fatalf("longest %d below current %d for %v", got.Longest, got.Current, byDay)
		}
		if again := Compute(byDay, todayValue, now); !reflect.DeepEqual(got, again) {
			t.Fatalf("compute is not idempotent: %+v then %+v", got, again)
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	byDay := map[timeutil.Day]float64{ago(1): 1, ago(2): 1}
	Compute(byDay, 1, now)
	if len(byDay) != 2 {
		t.Fatalf("input map modified: %v", byDay)
	}
}
