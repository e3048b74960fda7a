// seehuhn.de/go/ink - a freehand ink engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gesture

import (
	"math"
	"slices"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"
)

// recorder is a Handler which logs the calls it receives.
type recorder struct {
	calls     []string
	grab      bool
	sections  int
	progress  []float64
	viewMoves int
	onAppend  func()
}

func (r *recorder) BeginStroke(p vec.Vec2, eraser bool) {
	if eraser {
		r.calls = append(r.calls, "begin-eraser")
	} else {
		r.calls = append(r.calls, "begin-stroke")
	}
}
func (r *recorder) ExtendStroke(vec.Vec2)  { r.calls = append(r.calls, "extend-stroke") }
func (r *recorder) EndStroke()             { r.calls = append(r.calls, "end-stroke") }
func (r *recorder) CancelStroke()          { r.calls = append(r.calls, "cancel-stroke") }
func (r *recorder) BeginMarquee(vec.Vec2)  { r.calls = append(r.calls, "begin-marquee") }
func (r *recorder) ExtendMarquee(vec.Vec2) { r.calls = append(r.calls, "extend-marquee") }
func (r *recorder) EndMarquee()            { r.calls = append(r.calls, "end-marquee") }
func (r *recorder) CancelMarquee()         { r.calls = append(r.calls, "cancel-marquee") }
func (r *recorder) GrabSelection(vec.Vec2, float64) bool {
	if r.grab {
		r.calls = append(r.calls, "grab")
	}
	return r.grab
}
func (r *recorder) UpdateTransform(vec.Vec2) { r.calls = append(r.calls, "update-transform") }
func (r *recorder) EndTransform()            { r.calls = append(r.calls, "end-transform") }
func (r *recorder) CancelTransform()         { r.calls = append(r.calls, "cancel-transform") }
func (r *recorder) Paste(vec.Vec2)           { r.calls = append(r.calls, "paste") }
func (r *recorder) Pagination(p float64)     { r.progress = append(r.progress, p) }
func (r *recorder) AppendSection() {
	r.sections++
	if r.onAppend != nil {
		r.onAppend()
	}
}
func (r *recorder) ViewChanged() { r.viewMoves++ }

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func ev(id int, kind PointerKind, a Action, x, y float64, t int) PointerEvent {
	return PointerEvent{ID: id, Kind: kind, Action: a, Pos: vec.Vec2{X: x, Y: y}, Time: ms(t)}
}

func newTestMachine() (*Machine, *recorder) {
	r := &recorder{}
	m := NewMachine(r, NewViewport(400, 600, 400, 600))
	return m, r
}

func TestDrawPointers(t *testing.T) {
	type testCase struct {
		kind  PointerKind
		state State
		first string
	}
	for _, tc := range []testCase{
		{Stylus, Drawing, "begin-stroke"},
		{Mouse, Drawing, "begin-stroke"},
		{Eraser, Drawing, "begin-eraser"},
		{Finger, Panning, ""},
	} {
		m, r := newTestMachine()
		m.Handle(ev(1, tc.kind, Down, 10, 10, 0))
		if m.State() != tc.state {
			t.Errorf("%s: state %s, want %s", tc.kind, m.State(), tc.state)
		}
		if tc.first != "" && (len(r.calls) == 0 || r.calls[0] != tc.first) {
			t.Errorf("%s: calls %v", tc.kind, r.calls)
		}
		if tc.kind == Finger && slices.Contains(r.calls, "begin-stroke") {
			t.Error("finger started a stroke")
		}
		m.Handle(ev(1, tc.kind, Move, 20, 20, 10))
		m.Handle(ev(1, tc.kind, Up, 30, 20, 20))
		if m.State() != Idle {
			t.Errorf("%s: state %s after up", tc.kind, m.State())
		}
	}
}

func TestFingerNeverDraws(t *testing.T) {
	for _, tool := range []Tool{ToolDraw, ToolPan, ToolSelect} {
		m, r := newTestMachine()
		m.Tool = tool
		m.Handle(ev(1, Finger, Down, 10, 10, 0))
		m.Handle(ev(1, Finger, Move, 50, 50, 10))
		m.Handle(ev(1, Finger, Up, 50, 50, 20))
		for _, c := range r.calls {
			if c == "begin-stroke" || c == "begin-eraser" {
				t.Errorf("tool %s: finger drew", tool)
			}
		}
	}
}

func TestStrokeSequence(t *testing.T) {
	m, r := newTestMachine()
	m.Handle(ev(1, Stylus, Down, 10, 10, 0))
	m.Handle(ev(1, Stylus, Move, 20, 10, 10))
	m.Handle(ev(1, Stylus, Move, 30, 10, 20))
	m.Handle(ev(1, Stylus, Up, 40, 10, 30))
	want := []string{"begin-stroke", "extend-stroke", "extend-stroke", "extend-stroke", "end-stroke"}
	if !slices.Equal(r.calls, want) {
		t.Errorf("calls %v, want %v", r.calls, want)
	}
}

func TestSecondPointerCancels(t *testing.T) {
	m, r := newTestMachine()
	m.Handle(ev(1, Stylus, Down, 10, 10, 0))
	m.Handle(ev(1, Stylus, Move, 20, 10, 10))
	m.Handle(ev(2, Finger, Down, 100, 100, 20))
	if m.State() != Pinching {
		t.Fatalf("state %s, want pinching", m.State())
	}
	if r.calls[len(r.calls)-1] != "cancel-stroke" {
		t.Errorf("calls %v", r.calls)
	}

	// the remaining pointer pans
	m.Handle(ev(2, Finger, Up, 100, 100, 30))
	if m.State() != Panning || m.PanSource() != PanFinger {
		t.Errorf("state %s after lifting one pointer", m.State())
	}
	m.Handle(ev(1, Stylus, Up, 20, 10, 40))
	if m.State() != Idle {
		t.Errorf("state %s after lifting both pointers", m.State())
	}
	if slices.Contains(r.calls, "end-stroke") {
		t.Error("cancelled stroke was committed")
	}
}

func TestPinchZoom(t *testing.T) {
	m, _ := newTestMachine()
	m.Handle(ev(1, Finger, Down, 100, 300, 0))
	m.Handle(ev(2, Finger, Down, 300, 300, 10))
	anchor := m.View.ToDocument(vec.Vec2{X: 200, Y: 300})

	m.Handle(ev(1, Finger, Move, 0, 300, 20))
	m.Handle(ev(2, Finger, Move, 400, 300, 30))
	if math.Abs(m.View.Scale-2) > 1e-9 {
		t.Errorf("scale %g, want 2", m.View.Scale)
	}
	got := m.View.ToDocument(vec.Vec2{X: 200, Y: 300})
	if got.Sub(anchor).Length() > 1e-9 {
		t.Errorf("pinch centre moved from %v to %v", anchor, got)
	}

	m.Handle(ev(1, Finger, Move, 190, 300, 40))
	m.Handle(ev(2, Finger, Move, 210, 300, 50))
	if m.View.Scale != m.View.MinScale {
		t.Errorf("scale %g not clamped", m.View.Scale)
	}
}

func TestZoomSnapBack(t *testing.T) {
	v := NewViewport(400, 600, 400, 600)
	v.Hold()
	v.ZoomAt(vec.Vec2{X: 200, Y: 300}, 0.5)
	if v.Scale != 0.5 {
		t.Fatalf("scale %g", v.Scale)
	}
	v.Release(vec.Vec2{}, t0)
	for i := 1; i <= 100 && v.Animating(); i++ {
		v.Tick(ms(16 * i))
	}
	if v.Scale != 1 || v.Overscroll() != (vec.Vec2{}) {
		t.Errorf("scale %g, overscroll %v after snap-back", v.Scale, v.Overscroll())
	}
}

func TestOverscroll(t *testing.T) {
	v := NewViewport(400, 600, 400, 1200)
	v.Hold()
	v.PanBy(vec.Vec2{Y: 100}) // pull down at the top
	if v.Offset.Y != -50 {
		t.Errorf("offset %g, want -50 with resistance", v.Offset.Y)
	}
	v.PanBy(vec.Vec2{Y: -150}) // 50 back to the edge, then 100 inside
	if v.Offset.Y != 100 {
		t.Errorf("offset %g, want 100", v.Offset.Y)
	}

	v.PanBy(vec.Vec2{Y: 200})
	v.Release(vec.Vec2{}, t0)
	for i := 1; i <= 200 && v.Animating(); i++ {
		v.Tick(ms(16 * i))
	}
	if v.Offset.Y != 0 {
		t.Errorf("offset %g after snap-back", v.Offset.Y)
	}
}

func TestFling(t *testing.T) {
	v := NewViewport(400, 600, 400, 5000)
	v.Offset.Y = 1000
	v.Hold()
	v.Release(vec.Vec2{Y: -2000}, t0)
	if !v.Animating() {
		t.Fatal("fling not started")
	}
	prev := v.Offset.Y
	var steps []float64
	for i := 1; i <= 500 && v.Animating(); i++ {
		v.Tick(ms(16 * i))
		steps = append(steps, v.Offset.Y-prev)
		prev = v.Offset.Y
	}
	if v.Animating() {
		t.Fatal("fling did not stop")
	}
	if v.Offset.Y <= 1000 {
		t.Errorf("fling moved to %g", v.Offset.Y)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] > steps[i-1]+1e-9 {
			t.Errorf("fling accelerated at step %d", i)
			break
		}
	}
}

func TestLongPress(t *testing.T) {
	m, r := newTestMachine()
	m.Handle(ev(1, Stylus, Down, 100, 100, 0))
	m.Handle(ev(1, Stylus, Move, 103, 102, 100))
	m.Tick(ms(400))
	if m.State() != Drawing {
		t.Fatalf("state %s before the delay", m.State())
	}
	m.Tick(ms(520))
	if m.State() != Panning || m.PanSource() != PanTool {
		t.Fatalf("state %s after a long press", m.State())
	}
	if !slices.Contains(r.calls, "cancel-stroke") {
		t.Error("stroke not cancelled")
	}

	offset := m.View.Offset
	m.Handle(ev(1, Stylus, Move, 103, 152, 600))
	if m.View.Offset == offset {
		t.Error("temporary pan did not move the view")
	}
	m.Handle(ev(1, Stylus, Up, 103, 152, 700))
	if m.State() != Idle {
		t.Errorf("state %s after up", m.State())
	}
}

func TestLongPressSlop(t *testing.T) {
	m, _ := newTestMachine()
	m.Handle(ev(1, Stylus, Down, 100, 100, 0))
	m.Handle(ev(1, Stylus, Move, 120, 100, 100))
	m.Tick(ms(600))
	if m.State() != Drawing {
		t.Errorf("state %s after moving", m.State())
	}

	m, _ = newTestMachine()
	m.Tool = ToolPan
	m.Handle(ev(1, Stylus, Down, 100, 100, 0))
	m.Tick(ms(600))
	if m.State() != Panning || m.PanSource() != PanTool {
		t.Errorf("pan tool: state %s", m.State())
	}
}

func TestMarqueeAndTransform(t *testing.T) {
	m, r := newTestMachine()
	m.Tool = ToolSelect
	m.Handle(ev(1, Finger, Down, 10, 10, 0))
	m.Handle(ev(1, Finger, Move, 50, 50, 10))
	m.Handle(ev(1, Finger, Up, 50, 50, 20))
	want := []string{"begin-marquee", "extend-marquee", "end-marquee"}
	if !slices.Equal(r.calls, want) {
		t.Errorf("calls %v", r.calls)
	}

	r.calls = nil
	r.grab = true
	m.Handle(ev(1, Finger, Down, 30, 30, 100))
	if m.State() != Transforming {
		t.Fatalf("state %s", m.State())
	}
	m.Handle(ev(1, Finger, Move, 40, 40, 110))
	m.Handle(ev(1, Finger, Up, 40, 40, 120))
	want = []string{"grab", "update-transform", "end-transform"}
	if !slices.Equal(r.calls, want) {
		t.Errorf("calls %v", r.calls)
	}
}

func TestCancelFinalizes(t *testing.T) {
	type testCase struct {
		tool Tool
		grab bool
		kind PointerKind
		want string
	}
	for _, tc := range []testCase{
		{ToolDraw, false, Stylus, "cancel-stroke"},
		{ToolSelect, false, Finger, "cancel-marquee"},
		{ToolSelect, true, Finger, "cancel-transform"},
	} {
		m, r := newTestMachine()
		m.Tool = tc.tool
		r.grab = tc.grab
		m.Handle(ev(1, tc.kind, Down, 10, 10, 0))
		m.Handle(ev(1, tc.kind, Move, 20, 20, 10))
		m.Handle(ev(1, tc.kind, Cancel, 20, 20, 20))
		if m.State() != Idle || r.calls[len(r.calls)-1] != tc.want {
			t.Errorf("state %s, calls %v, want %s", m.State(), r.calls, tc.want)
		}
	}
}

func TestStalePointer(t *testing.T) {
	m, r := newTestMachine()
	m.Handle(ev(1, Stylus, Down, 10, 10, 0))
	m.Handle(ev(7, Stylus, Move, 20, 20, 10))
	if m.State() != Idle {
		t.Errorf("state %s after a stale pointer", m.State())
	}
	if r.calls[len(r.calls)-1] != "end-stroke" {
		t.Errorf("calls %v", r.calls)
	}
	m.Handle(ev(1, Stylus, Up, 20, 20, 20))
	if m.State() != Idle {
		t.Errorf("state %s", m.State())
	}
}

func TestPaste(t *testing.T) {
	m, r := newTestMachine()
	m.ArmPaste()
	if m.State() != PastePending {
		t.Fatalf("state %s", m.State())
	}
	m.Handle(ev(1, Finger, Down, 10, 10, 0))
	m.Handle(ev(1, Finger, Move, 50, 50, 10))
	m.Handle(ev(1, Finger, Up, 50, 50, 20))
	if !slices.Equal(r.calls, []string{"paste"}) {
		t.Errorf("calls %v", r.calls)
	}
	if m.State() != Idle {
		t.Errorf("state %s", m.State())
	}
}

func TestPagination(t *testing.T) {
	m, r := newTestMachine()
	r.onAppend = func() { m.View.ContentH += sectionGap + 600 }

	// the content exactly fills the view, so all pulling is overscroll
	// with resistance 0.5: a finger movement of 2·0.4·600 reaches the
	// commit threshold
	m.Handle(ev(1, Finger, Down, 200, 590, 0))
	y := 590.0
	for i := 1; i <= 24; i++ {
		y -= 20
		m.Handle(ev(1, Finger, Move, 200, y, 10*i))
	}
	if r.sections != 1 {
		t.Fatalf("%d sections appended, want 1", r.sections)
	}
	if len(r.progress) == 0 || !slices.Contains(r.progress, 1) {
		t.Errorf("progress %v never reached 1", r.progress)
	}
	for i := 1; i < len(r.progress); i++ {
		if r.progress[i] == 0 {
			continue
		}
		if r.progress[i] < r.progress[i-1] {
			t.Errorf("progress decreased: %v", r.progress)
			break
		}
	}

	// pulling further in the same drag adds nothing
	for i := 1; i <= 40; i++ {
		y -= 20
		m.Handle(ev(1, Finger, Move, 200, y, 300+10*i))
	}
	if r.sections != 1 {
		t.Errorf("%d sections appended in one drag", r.sections)
	}
	m.Handle(ev(1, Finger, Up, 200, y, 800))
	if r.progress[len(r.progress)-1] != 0 {
		t.Error("progress not reset on pointer-up")
	}
}

const sectionGap = 24

func TestPaginationThresholdExact(t *testing.T) {
	m, r := newTestMachine()
	m.Handle(ev(1, Finger, Down, 200, 500, 0))
	m.Handle(ev(1, Finger, Move, 200, 500-470, 10))
	if r.sections != 0 {
		t.Fatal("section appended below the threshold")
	}
	m.Handle(ev(1, Finger, Move, 200, 500-480, 20))
	if r.sections != 1 {
		t.Errorf("%d sections appended at the threshold", r.sections)
	}
	m.Handle(ev(1, Finger, Move, 200, 500-480, 30))
	m.Handle(ev(1, Finger, Up, 200, 500-480, 40))

	// a new drag is re-armed
	m.Handle(ev(1, Finger, Down, 200, 500, 100))
	m.Handle(ev(1, Finger, Move, 200, 20, 110))
	if r.sections != 2 {
		t.Errorf("%d sections after the second drag", r.sections)
	}
}
