package models

import "testing"

func TestLessonStatusValid(t *testing.T) {
	for _, s := range []LessonStatus{LessonScheduled, LessonCompleted, LessonCancelledInTime, LessonMissed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []LessonStatus{"", "cancelled", "done", "SCHEDULED"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestLessonStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to LessonStatus
		want     bool
	}{
		{LessonScheduled, LessonCompleted, true},
		{LessonScheduled, LessonCancelledInTime, true},
		{LessonScheduled, LessonMissed, true},
		{LessonScheduled, LessonScheduled, false},
		{LessonCompleted, LessonScheduled, false},
		{LessonCompleted, LessonMissed, false},
		{LessonCancelledInTime, LessonCompleted, false},
		{LessonMissed, LessonScheduled, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestLessonStatusTerminal(t *testing.T) {
	if LessonScheduled.Terminal() {
		t.Error("scheduled should not be terminal")
	}
	for _, s := range []LessonStatus{LessonCompleted, LessonCancelledInTime, LessonMissed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}
