package backdrop

import (
	"image"
	"testing"

	"github.com/go-drift/backdrop/pkg/animation"
	"github.com/go-drift/backdrop/pkg/dispatch"
	"github.com/go-drift/backdrop/pkg/graphics"
	"github.com/go-drift/backdrop/pkg/surface"
)

// markerBlur copies src and stamps the requested radius into the first
// pixel so tests can see which request produced the presented frame.
func markerBlur(src *image.RGBA, radius float64, iterations int, tint *graphics.Color, mode graphics.BlendMode) *image.RGBA {
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	out.Pix[0] = uint8(radius)
	return out
}

// stubSource is a capture source at a fixed world origin. ConvertRect maps
// between two stubSource spaces through world coordinates.
type stubSource struct {
	bounds  graphics.Rect
	origin  graphics.Offset
	fill    graphics.Color
	renders int
}

func (s *stubSource) RenderInto(ctx *surface.Context) {
	s.renders++
	ctx.Fill(ctx.Bounds(), s.fill)
}

func (s *stubSource) ConvertRect(r graphics.Rect, to surface.Source) graphics.Rect {
	target, ok := to.(*stubSource)
	if !ok {
		return r
	}
	return r.Translate(s.origin.X-target.origin.X, s.origin.Y-target.origin.Y)
}

func (s *stubSource) Bounds() graphics.Rect             { return s.bounds }
func (s *stubSource) PresentationBounds() graphics.Rect { return s.bounds }

type stubAttachment struct {
	superview *stubSource
	window    *stubSource
	own       *stubSource
	siblings  []surface.Layer
}

func (a *stubAttachment) Superview() surface.Source {
	if a.superview == nil {
		return nil
	}
	return a.superview
}

func (a *stubAttachment) Window() surface.Source {
	if a.window == nil {
		return nil
	}
	return a.window
}

func (a *stubAttachment) OwnSurface() surface.Source { return a.own }

func (a *stubAttachment) PaintSiblingsAbove() []surface.Layer { return a.siblings }

// manualQueue defers background work until the test drains it, simulating a
// slow blur that completes after newer requests.
type manualQueue struct {
	tasks []func()
}

func (q *manualQueue) Async(fn func()) { q.tasks = append(q.tasks, fn) }

func (q *manualQueue) drain() {
	for len(q.tasks) > 0 {
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		fn()
	}
}

func newTestHost() *stubAttachment {
	return &stubAttachment{
		superview: &stubSource{bounds: graphics.RectFromLTWH(0, 0, 100, 100), fill: graphics.ColorWhite},
		window:    &stubSource{bounds: graphics.RectFromLTWH(0, 0, 200, 200), fill: graphics.ColorWhite},
		own: &stubSource{
			bounds: graphics.RectFromLTWH(0, 0, 20, 10),
			origin: graphics.Offset{X: 10, Y: 10},
		},
	}
}

func newTestView(background dispatch.Queue) *View {
	if background == nil {
		background = dispatch.Inline{}
	}
	return NewView(Options{
		Presentation: dispatch.Inline{},
		Background:   background,
		Blur:         markerBlur,
		DeviceScale:  1,
	})
}

// marker returns the radius stamped into the presented frame.
func marker(t *testing.T, v *View) uint8 {
	t.Helper()
	contents := v.Layer().Contents()
	if contents == nil {
		t.Fatal("nothing presented")
	}
	return contents.Pix[0]
}

func TestAttachStaticCapturesExactlyOnce(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()

	v.AttachTo(host)
	if v.State() != StateStaticCaptured {
		t.Fatalf("state = %v, want static-captured", v.State())
	}
	if host.superview.renders != 1 {
		t.Fatalf("superview rendered %d times, want 1", host.superview.renders)
	}
	if got := marker(t, v); got != 10 {
		t.Fatalf("presented radius %d, want default 10", got)
	}

	// No clock subscription exists, so frames change nothing.
	for i := 0; i < 5; i++ {
		animation.StepFrame(true)
	}
	if host.superview.renders != 1 {
		t.Fatalf("static view recaptured on frame ticks: %d renders", host.superview.renders)
	}
}

func TestRatioMutationReblursCachedImageWithoutRecapture(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.AttachTo(host)

	v.SetBlurRatio(0.5)
	if host.superview.renders != 1 {
		t.Fatalf("ratio change recaptured: %d renders", host.superview.renders)
	}
	if got := marker(t, v); got != 5 {
		t.Fatalf("presented radius %d after ratio 0.5, want 5", got)
	}

	// Ratio 0 must present an unblurred copy of the cached frame: the
	// marker is gone and the white fill shows through.
	v.SetBlurRatio(0)
	if got := marker(t, v); got != 255 {
		t.Fatalf("ratio 0 did not present the unblurred capture: pixel %d", got)
	}
	if host.superview.renders != 1 {
		t.Fatalf("ratio change recaptured: %d renders", host.superview.renders)
	}
}

func TestRefreshClearsCacheAndForcesOneCapture(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.AttachTo(host)
	v.SetBlurRatio(0.3)

	v.Refresh()
	if host.superview.renders != 2 {
		t.Fatalf("refresh captured %d times total, want 2", host.superview.renders)
	}
	if v.BlurRatio() != 1 {
		t.Fatalf("refresh left ratio at %v, want 1", v.BlurRatio())
	}
	if got := marker(t, v); got != 10 {
		t.Fatalf("presented radius %d after refresh, want 10", got)
	}

	// No cache reuse on an immediate second refresh.
	v.Refresh()
	if host.superview.renders != 3 {
		t.Fatalf("second refresh reused the cache: %d renders", host.superview.renders)
	}
}

func TestRemoveClearsContentsWithoutRecapturing(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.AttachTo(host)

	v.Remove()
	if v.Layer().Contents() != nil {
		t.Fatal("remove left contents presented")
	}
	if v.ctrl.cache != nil {
		t.Fatal("remove left the static cache populated")
	}
	if host.superview.renders != 1 {
		t.Fatalf("remove triggered a capture: %d renders", host.superview.renders)
	}
	if v.BlurRatio() != 1 {
		t.Fatalf("remove left ratio at %v, want 1", v.BlurRatio())
	}
}

func TestTrackingModeChangesKeepAtMostOneSubscription(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.AttachTo(host)

	modes := []TrackingMode{
		TrackingModeCommon, TrackingModeTracking, TrackingModeCommon,
		TrackingModeTracking, TrackingModeCommon,
	}
	for _, m := range modes {
		v.SetTrackingMode(m)
		total := animation.ActiveCount(animation.ChannelContinuous) +
			animation.ActiveCount(animation.ChannelInteraction)
		if total != 1 {
			t.Fatalf("after switching to %v: %d active subscriptions, want 1", m, total)
		}
	}
	if v.State() != StateLiveAlways {
		t.Fatalf("state = %v, want live-always", v.State())
	}

	v.SetTrackingMode(TrackingModeNone)
	total := animation.ActiveCount(animation.ChannelContinuous) +
		animation.ActiveCount(animation.ChannelInteraction)
	if total != 0 {
		t.Fatalf("tracking none left %d subscriptions", total)
	}
	if v.State() != StateStaticCaptured {
		t.Fatalf("state = %v, want static-captured", v.State())
	}

	v.Detach()
	if animation.ActiveCount(animation.ChannelContinuous)+animation.ActiveCount(animation.ChannelInteraction) != 0 {
		t.Fatal("detach left a subscription active")
	}
}

func TestLiveAlwaysCapturesEveryFrame(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.SetTrackingMode(TrackingModeCommon)
	v.AttachTo(host)

	if host.superview.renders != 0 {
		t.Fatalf("live attach captured before the first frame: %d", host.superview.renders)
	}
	animation.StepFrame(false)
	animation.StepFrame(false)
	if host.superview.renders != 2 {
		t.Fatalf("%d captures after 2 frames, want 2", host.superview.renders)
	}
	if got := marker(t, v); got != 10 {
		t.Fatalf("presented radius %d, want 10", got)
	}
	v.Detach()
}

func TestLiveTrackingCapturesOnlyDuringInteraction(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.SetTrackingMode(TrackingModeTracking)
	v.AttachTo(host)
	defer v.Detach()

	animation.StepFrame(false)
	if host.superview.renders != 0 {
		t.Fatal("tracking view captured on an idle frame")
	}
	animation.StepFrame(true)
	if host.superview.renders != 1 {
		t.Fatalf("%d captures during interaction, want 1", host.superview.renders)
	}
}

func TestDetachKeepsCacheAndReattachResubscribes(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.AttachTo(host) // static snapshot cached

	v.Detach()
	if v.State() != StateDetached {
		t.Fatalf("state = %v, want detached", v.State())
	}
	if v.ctrl.cache == nil {
		t.Fatal("detach alone cleared the static cache")
	}
	if v.Layer().Contents() == nil {
		t.Fatal("detach cleared the presented contents")
	}

	// Reattach on the continuous channel: the subscription comes back and
	// frame cycles reuse the surviving snapshot instead of recapturing.
	v.SetTrackingMode(TrackingModeCommon)
	v.AttachTo(host)
	defer v.Detach()
	if got := animation.ActiveCount(animation.ChannelContinuous); got != 1 {
		t.Fatalf("%d continuous subscriptions after reattach, want 1", got)
	}
	animation.StepFrame(false)
	if host.superview.renders != 1 {
		t.Fatalf("frame cycle recaptured despite cached snapshot: %d renders", host.superview.renders)
	}
}

func TestStaleAsyncResultIsDropped(t *testing.T) {
	bg := &manualQueue{}
	v := newTestView(bg)
	host := newTestHost()
	v.AttachTo(host)

	v.SetBlurRadius(5)
	if got := marker(t, v); got != 5 {
		t.Fatalf("presented radius %d, want 5", got)
	}

	// Queue an async re-blur at radius 5; it will not run yet.
	v.SetDrawsAsynchronously(true)
	v.ctrl.reblurCached(true)
	v.SetDrawsAsynchronously(false)

	// A newer synchronous request lands first.
	v.SetBlurRadius(10)
	if got := marker(t, v); got != 10 {
		t.Fatalf("presented radius %d, want 10", got)
	}

	// Now the slow radius-5 blur completes. Its generation token is stale,
	// so it must not overwrite the newer frame.
	bg.drain()
	if got := marker(t, v); got != 10 {
		t.Fatalf("stale async result overwrote a newer frame: radius %d", got)
	}
}

func TestDeepRenderingCapturesWindowAndFixesOrigin(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.SetDeepRendering(true)
	v.AttachTo(host)

	if host.window.renders != 1 || host.superview.renders != 0 {
		t.Fatalf("deep capture used wrong source: window=%d superview=%d",
			host.window.renders, host.superview.renders)
	}
	// Fresh capture: no origin fix, contents fill the component's bounds.
	if got := v.Layer().ContentsRect(); got != host.own.bounds {
		t.Fatalf("contents rect = %v, want own bounds %v", got, host.own.bounds)
	}

	// A cached re-blur while deep rendering compensates for movement: the
	// display rect is the component's bounds in window space.
	v.SetBlurRatio(0.5)
	want := graphics.RectFromLTWH(10, 10, 20, 10)
	if got := v.Layer().ContentsRect(); got != want {
		t.Fatalf("origin-fixed contents rect = %v, want %v", got, want)
	}
}

func TestCaptureUnavailableIsSilentlySkipped(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	host.superview = nil

	v.AttachTo(host)
	if v.Layer().Contents() != nil {
		t.Fatal("presented contents without a capture source")
	}

	// Refresh while detached is equally a no-op.
	v.Detach()
	v.Refresh()
	if v.Layer().Contents() != nil {
		t.Fatal("refresh presented contents while detached")
	}
}

func TestCaptureHidesOwnLayerAndSiblingsAbove(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	sibling := &toggleLayer{}
	host.siblings = []surface.Layer{sibling}

	own := v.Layer()
	host.superview.fill = graphics.ColorWhite
	v.AttachTo(host)

	if sibling.hides != 1 || sibling.shows != 1 {
		t.Fatalf("sibling hide/show = %d/%d, want 1/1", sibling.hides, sibling.shows)
	}
	if own.Hidden() {
		t.Fatal("own layer left hidden after capture")
	}
}

// toggleLayer counts visibility flips.
type toggleLayer struct {
	hidden bool
	hides  int
	shows  int
}

func (l *toggleLayer) Hidden() bool { return l.hidden }

func (l *toggleLayer) SetHidden(hidden bool) {
	l.hidden = hidden
	if hidden {
		l.hides++
	} else {
		l.shows++
	}
}
