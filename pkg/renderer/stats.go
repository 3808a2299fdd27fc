package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Pixels (or surface samples) visited
	PixelsDrawn int           // Writes that passed the depth test
	Duration    time.Duration // Wall time of the whole frame
}

// Add folds the counters of another partial render into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PixelsDrawn += other.PixelsDrawn
}

// Coverage returns the fraction of visited pixels that were drawn
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PixelsDrawn) / float64(s.TotalPixels)
}
