// Package colors defines the named colour profiles used to segment frames and
// the HSV image type they are matched against.
//
// # HSV Scale
//
// Hue, saturation and value use the 8-bit scale common to camera tooling:
//   - H: 0-179 (degrees halved)
//   - S: 0-255
//   - V: 0-255
//
// # Profiles
//
// Each Profile carries two HSV ranges that are combined with a logical OR.
// Red needs both because its hue wraps around 0/180; the other colours leave
// the second range zeroed, and a zeroed range never matches. Yellow, Magenta
// and Cyan have narrow ranges that overlap Red, Blue and Green; pick role
// colours that do not share hues with each other. None has no range and
// cannot be tracked.
package colors
