// Package ui contains the Bubble Tea program that hosts the mention composer.
// The Model plays the editor surface: it owns the document, the cursor and
// the theme flag, and exposes them to the mention engine through the
// suggest.Editor interface.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse events, window size, directory reloads).
//   - Key presses go to the controller first. While the popup shows
//     candidates it consumes Up, Down, Enter, Tab and Escape; everything else
//     falls through to the default editing handlers in input.go.
//   - finishUpdate runs after every message. When the document or cursor
//     changed since the last run it recomputes the suggestion state, then it
//     rebuilds or removes the popup. A message is therefore always applied to
//     the document before the engine looks at it.
//
// Rendering:
//   - layout.go wraps blocks into screen lines and records the cell of every
//     position; CoordsAtPos answers popup placement from it.
//   - view.go draws the visible lines, overlays the popup at its origin and
//     marks popup rows with bubblezone so pointer releases resolve to a
//     candidate.
//
// Directory reloads:
//   - An optional directory.Watcher streams reloaded identities. Update waits
//     for those events and swaps the candidate provider, refiltering an open
//     popup in place.
package ui
