// Package backdrop renders a live blurred-backdrop effect: a surface that
// continuously mirrors the content behind it with a Gaussian-style blur,
// updated once, on every frame, or only while the user is interacting.
//
// # Architecture
//
// A [View] owns a capture→blur→present pipeline:
//
//   - The compositor snapshots the capture source (the superview, or the
//     window when deep rendering is on) into an offscreen buffer on the
//     presentation thread, hiding the view's own layer and every paint
//     sibling above it for the duration of the render.
//   - The blur pipeline applies the embedder-supplied kernel, inline or on
//     the background context, and marshals the result back to the
//     presentation queue.
//   - The [PresentationLayer] displays the result and tracks the
//     presentation-time radius, which can interpolate independently of the
//     discrete captured bitmap.
//
// The refresh controller decides when each cycle runs. With
// [TrackingModeNone] it captures once and reuses the snapshot; the other
// modes subscribe to one of the two frame-clock channels stepped by the
// host via [animation.StepFrame]. Stale asynchronous results are dropped by
// generation token, so the newest request always wins.
//
// # Usage
//
//	queue := dispatch.NewSerial()
//	view := backdrop.NewView(backdrop.Options{
//	    Presentation: queue,
//	    Blur:         myKernel,
//	    DeviceScale:  2,
//	})
//	view.SetTrackingMode(backdrop.TrackingModeCommon)
//	view.AttachTo(host)          // host implements backdrop.Attachment
//	// per display refresh, on the presentation thread:
//	animation.StepFrame(isScrolling)
//
// Failures never propagate to the owner: a cycle that cannot capture or
// blur is skipped and the last good frame stays presented. Absorbed
// failures are reported through the errors package for diagnostics.
package backdrop
