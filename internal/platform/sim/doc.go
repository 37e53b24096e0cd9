// Package sim provides in-process collaborators for the status bar window
// controller: a recording surface host, a visibility signal that can be
// taken offline, in-memory preferences, a raster blur overlay and a fixed
// display. Importing the package registers it as the platform backend.
package sim
