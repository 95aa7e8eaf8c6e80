//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func TestHostTimerDue(t *testing.T) {
	var tm hostTimer
	if n := tm.due(time.Unix(0, 0)); n != 0 {
		t.Fatalf("due() before Start = %d, want 0", n)
	}
	if err := tm.Start(200*time.Microsecond, func() {}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	now := time.Unix(100, 0)
	if n := tm.due(now); n != 1 {
		t.Fatalf("first due() = %d, want 1", n)
	}
	now = now.Add(time.Millisecond + 100*time.Microsecond)
	if n := tm.due(now); n != 5 {
		t.Fatalf("due() after 1.1ms = %d, want 5", n)
	}
	now = now.Add(100 * time.Microsecond)
	if n := tm.due(now); n != 1 {
		t.Fatalf("due() with carried remainder = %d, want 1", n)
	}
}

func TestHostTimerStartRejects(t *testing.T) {
	var tm hostTimer
	if err := tm.Start(0, func() {}); err == nil {
		t.Fatal("Start(0) succeeded")
	}
	if err := tm.Start(time.Millisecond, nil); err == nil {
		t.Fatal("Start(nil isr) succeeded")
	}
}

func TestRunHeadlessFast(t *testing.T) {
	h := NewHost(HostConfig{Headless: true, Log: io.Discard})

	err := RunHeadless(context.Background(), h, nil, HeadlessConfig{Fast: true})
	if !errors.Is(err, ErrTimerNotStarted) {
		t.Fatalf("RunHeadless before Start = %v, want ErrTimerNotStarted", err)
	}

	isr, steps := 0, 0
	if err := h.Timer().Start(200*time.Microsecond, func() { isr++ }); err != nil {
		t.Fatalf("Start: %v", err)
	}
	err = RunHeadless(context.Background(), h, func() error {
		steps++
		if steps != isr {
			t.Fatalf("step %d ran after %d ticks", steps, isr)
		}
		return nil
	}, HeadlessConfig{Fast: true, Ticks: 2500})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if isr != 2500 || steps != 2500 {
		t.Fatalf("isr=%d steps=%d, want 2500 each", isr, steps)
	}
}

func TestRunHeadlessStepError(t *testing.T) {
	h := NewHost(HostConfig{Headless: true, Log: io.Discard})
	_ = h.Timer().Start(time.Millisecond, func() {})

	boom := errors.New("boom")
	err := RunHeadless(context.Background(), h, func() error { return boom }, HeadlessConfig{Fast: true, Ticks: 10})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless = %v, want boom", err)
	}
}

func TestHostJoystickReadsDrivenLow(t *testing.T) {
	h := NewHost(HostConfig{Headless: true, Log: io.Discard})
	up := h.db9[0]
	if u, _, _, _, _ := h.Joystick(); u {
		t.Fatal("released UP should read open")
	}
	if err := up.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	_ = up.Write(false)
	if u, _, _, _, _ := h.Joystick(); !u {
		t.Fatal("UP driven low should read closed")
	}
	_ = up.Write(true)
	if u, _, _, _, _ := h.Joystick(); u {
		t.Fatal("UP driven high should read open")
	}
}
