// Package imaging turns raw camera or still frames into the working frames the
// detectors consume.
//
// This package implements frame setup (resize, optional mirror, Gaussian blur
// and HSV conversion), a cached still-image loader used to replay a
// directory of frames offline, and an Overlay for drawing detections back
// onto a frame. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Working Frame
//
// Every detection, line and packet coordinate is expressed in the working
// frame produced by Preprocess, not in the camera's native resolution:
//   - Fixed size: FrameSetup.Width x FrameSetup.Height (640x480 by default)
//   - Scaled: the source size times FrameSetup.Scale
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Preprocess is stateless and
// can be called concurrently on different images. An Overlay is not safe
// for concurrent drawing.
//
// # Performance Considerations
//
// HSV conversion visits every pixel, and the blur cost grows with the kernel
// window. Keep the working frame small; 640x480 is the intended upper bound
// for a real-time loop.
package imaging
