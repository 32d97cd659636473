package physics

import (
	"errors"
	"testing"
)

func TestUpdateUsesPreStepVelocity(t *testing.T) {
	r, err := NewRectangle(0, 0, 10, 10, 1)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	r.Vel = V(10, 0)
	r.Acc = V(0, 100)

	r.Update(1)

	if r.Pos != V(10, 0) {
		t.Errorf("position should advance by old velocity (10,0), got %v", r.Pos)
	}
	if r.Vel != V(10, 100) {
		t.Errorf("expected velocity (10,100), got %v", r.Vel)
	}

	r.Update(1)

	if r.Pos != V(20, 100) {
		t.Errorf("second step: expected position (20,100), got %v", r.Pos)
	}
}

func TestUpdateLeavesMassAlone(t *testing.T) {
	r, _ := NewRectangle(0, 0, 1, 1, 7)
	r.Acc = V(0, DefaultGravity)
	for i := 0; i < 10; i++ {
		r.Update(1.0 / 60)
	}
	if r.Mass() != 7 {
		t.Errorf("expected mass 7, got %f", r.Mass())
	}
}

func TestRectangleEdges(t *testing.T) {
	r, err := NewRectangle(50, 40, 20, 10, 1)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	tests := []struct {
		name     string
		got      float32
		expected float32
	}{
		{"left", r.Left(), 40},
		{"right", r.Right(), 60},
		{"top", r.Top(), 35},
		{"bottom", r.Bottom(), 45},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.expected, tt.got)
		}
	}

	box := BoxOf(r)
	if box.Width() != r.Width() || box.Height() != r.Height() {
		t.Errorf("box %v does not match %fx%f", box, r.Width(), r.Height())
	}
}

func TestNewRectangleValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float32
		wantErr bool
	}{
		{"negative width", -1, 10, true},
		{"negative height", 10, -1, true},
		{"zero width", 0, 10, false},
		{"zero both", 0, 0, false},
		{"regular", 10, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRectangle(0, 0, tt.w, tt.h, 1)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if r.Left() > r.Right() || r.Top() > r.Bottom() {
					t.Error("edges out of order")
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected *ArgumentError, got %T", err)
			}
			if argErr.Value != -1 {
				t.Errorf("expected value -1, got %f", argErr.Value)
			}
		})
	}
}

type recordingSurface struct {
	fills, strokes []Box
}

func (s *recordingSurface) FillRect(l, t, w, h float32) {
	s.fills = append(s.fills, Box{Left: l, Top: t, Right: l + w, Bottom: t + h})
}

func (s *recordingSurface) StrokeRect(l, t, w, h float32) {
	s.strokes = append(s.strokes, Box{Left: l, Top: t, Right: l + w, Bottom: t + h})
}

func TestRectangleRenderMatchesBox(t *testing.T) {
	r, _ := NewRectangle(100, 50, 30, 10, 1)
	s := &recordingSurface{}

	r.Render(s)

	if len(s.fills) != 1 {
		t.Fatalf("expected 1 fill, got %d", len(s.fills))
	}
	if s.fills[0] != BoxOf(r) {
		t.Errorf("rendered %v, expected %v", s.fills[0], BoxOf(r))
	}
}

func TestSystemError(t *testing.T) {
	cause := errors.New("no display")
	err := error(&SystemError{Op: "create window", Err: cause})

	if !errors.Is(err, ErrSystem) {
		t.Error("expected ErrSystem match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("system error must not match ErrInvalidArgument")
	}
	if err.Error() != "create window: no display" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
